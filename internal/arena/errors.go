package arena

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is returned without any network I/O when the token is empty
// or still a placeholder.
var ErrInvalidToken = errors.New("authentication error: missing or placeholder API token")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arena api status %d: %s", e.Status, e.Body)
}
