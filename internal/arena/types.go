package arena

// createArenaDTO is the subset of the arena creation response we read.
type createArenaDTO struct {
	ID string `json:"id"`
}
