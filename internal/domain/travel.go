package domain

import "fmt"

// TravelLeg is the estimate for one RouteKey.
// Distance and Duration are display strings passed through from the routing
// provider; only DurationSeconds takes part in arithmetic.
type TravelLeg struct {
	Distance        string `json:"distance"`
	Duration        string `json:"duration"`
	DurationSeconds int    `json:"duration_value"`
}

// FallbackLeg is substituted when the routing provider cannot estimate a leg.
var FallbackLeg = TravelLeg{
	Distance:        "15.0 km",
	Duration:        "25 mins",
	DurationSeconds: 1500,
}

// TravelTimeSet maps legs to their estimates. It may be partial.
type TravelTimeSet map[RouteKey]TravelLeg

// Validate rejects negative durations.
func (s TravelTimeSet) Validate() error {
	for k, leg := range s {
		if leg.DurationSeconds < 0 {
			return fmt.Errorf("leg %s: negative duration %d: %w", k, leg.DurationSeconds, ErrInvalidInput)
		}
	}
	return nil
}

// Seconds returns the duration of k, or zero when the leg is absent.
func (s TravelTimeSet) Seconds(k RouteKey) int {
	return s[k].DurationSeconds
}
