package contribution

import (
	"fmt"
	"time"
)

// DateLayout is the day-granularity calendar date carried by every
// contribution. Ordering and streak analytics never look below a day.
const DateLayout = "2006-01-02"

// Platform keys shared between sources, stats derivation, and the cache.
const (
	PlatformGitHub      = "GitHub"
	PlatformDiscord     = "Discord"
	PlatformForum       = "Forum"
	PlatformYouTube     = "YouTube"
	PlatformReddit      = "Reddit"
	PlatformPublication = "Publication"
)

// Contribution is one normalized activity record in a user's timeline.
type Contribution struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Validate enforces the mandatory-field invariant. Records failing it are
// dropped before entering a timeline.
func (c Contribution) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contribution missing id")
	}
	if c.Description == "" {
		return fmt.Errorf("contribution %s missing description", c.ID)
	}
	if c.Date == "" {
		return fmt.Errorf("contribution %s missing date", c.ID)
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return fmt.Errorf("contribution %s has malformed date %q", c.ID, c.Date)
	}
	return nil
}
