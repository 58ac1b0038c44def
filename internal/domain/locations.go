package domain

import (
	"fmt"
	"strings"
)

// Locations are the three addresses of a household commute.
// Values are opaque to the service; geocoding happens upstream.
type Locations struct {
	Home   string `json:"home"`
	School string `json:"school"`
	Work   string `json:"work"`
}

// Validate requires every location to be present.
func (l Locations) Validate() error {
	var missing []string
	if strings.TrimSpace(l.Home) == "" {
		missing = append(missing, "home")
	}
	if strings.TrimSpace(l.School) == "" {
		missing = append(missing, "school")
	}
	if strings.TrimSpace(l.Work) == "" {
		missing = append(missing, "work")
	}

	if len(missing) > 0 {
		return fmt.Errorf("locations missing %s: %w", strings.Join(missing, ", "), ErrInvalidInput)
	}
	return nil
}
