package arena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"teambattles/internal/models"
)

// startDateLayout matches ISO-8601 with milliseconds, e.g. 2025-10-08T06:58:00.000Z.
const startDateLayout = "2006-01-02T15:04:05.000Z07:00"

// InvitedTeams drops the host team and duplicates, keeping the configured order.
func InvitedTeams(hostTeamID string, teams []string) []string {
	seen := map[string]struct{}{hostTeamID: {}}
	invited := make([]string, 0, len(teams))
	for _, team := range teams {
		if _, ok := seen[team]; ok {
			continue
		}
		seen[team] = struct{}{}
		invited = append(invited, team)
	}
	return invited
}

func (c *Client) arenaForm(t models.Tournament) url.Values {
	form := url.Values{}
	form.Set("name", t.Name)
	form.Set("description", t.Description)
	form.Set("clockTime", strconv.FormatFloat(c.cfg.ClockTime, 'f', -1, 64))
	form.Set("clockIncrement", strconv.Itoa(c.cfg.ClockIncrement))
	form.Set("minutes", strconv.Itoa(c.cfg.Minutes))
	form.Set("rated", strconv.FormatBool(c.cfg.Rated))
	form.Set("variant", c.cfg.Variant)
	form.Set("startDate", FormatStartDate(t.StartsAt))
	form.Set("teamBattleByTeam", c.cfg.HostTeamID)
	for _, team := range InvitedTeams(c.cfg.HostTeamID, c.cfg.Teams) {
		form.Add("teams", team)
	}
	return form
}

func FormatStartDate(ts time.Time) string {
	return ts.UTC().Format(startDateLayout)
}

// PendingURL is reported for dry runs, where no arena id exists.
func (c *Client) PendingURL() string {
	return fmt.Sprintf("%s/team/%s/arena/pending", c.server(), c.cfg.HostTeamID)
}

// CreateTeamBattle makes exactly one attempt to create the arena for t.
func (c *Client) CreateTeamBattle(ctx context.Context, t models.Tournament) models.Result {
	result := models.Result{Tournament: t}

	log.Printf("Creating tournament: %s", t.Name)
	log.Printf("  Start: %s", FormatStartDate(t.StartsAt))

	if !ValidToken(c.token) {
		result.Err = ErrInvalidToken
		log.Printf("❌ Failed to create %s: %v", t.Name, result.Err)
		return result
	}

	if c.dryRun {
		invited := InvitedTeams(c.cfg.HostTeamID, c.cfg.Teams)
		log.Printf("[DRY RUN] Would create %s starting %s", t.Name, FormatStartDate(t.StartsAt))
		log.Printf("[DRY RUN] Invited teams (%d): %s", len(invited), strings.Join(invited, ", "))
		result.URL = c.PendingURL()
		return result
	}

	path := fmt.Sprintf("/api/team/%s/arena", url.PathEscape(c.cfg.HostTeamID))
	res, err := c.postForm(ctx, path, c.arenaForm(t))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			result.Status = apiErr.Status
		}
		result.Err = err
		log.Printf("❌ Failed to create %s: %v", t.Name, err)
		return result
	}
	defer res.Body.Close()
	result.Status = res.StatusCode

	var dto createArenaDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		result.Err = fmt.Errorf("failed to decode arena response: %w", err)
		log.Printf("❌ Failed to create %s: %v", t.Name, result.Err)
		return result
	}

	switch {
	case dto.ID != "":
		result.URL = fmt.Sprintf("%s/tournament/%s", c.server(), dto.ID)
	case res.Header.Get("Location") != "":
		result.URL = res.Header.Get("Location")
	}

	if result.URL == "" {
		log.Printf("✅ Created %s (url unknown)", t.Name)
	} else {
		log.Printf("✅ Created %s: %s", t.Name, result.URL)
	}
	return result
}
