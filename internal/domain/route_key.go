package domain

import "fmt"

// RouteKey names one directed leg between the three household locations.
type RouteKey string

const (
	HomeToSchool RouteKey = "home_to_school"
	SchoolToHome RouteKey = "school_to_home"
	SchoolToWork RouteKey = "school_to_work"
	WorkToSchool RouteKey = "work_to_school"
	HomeToWork   RouteKey = "home_to_work"
	WorkToHome   RouteKey = "work_to_home"
)

// AllRouteKeys lists every leg the fetcher produces, in lookup order.
var AllRouteKeys = []RouteKey{
	HomeToWork,
	WorkToHome,
	HomeToSchool,
	SchoolToHome,
	WorkToSchool,
	SchoolToWork,
}

// CycleRouteKeys are the legs of one school-run day:
// morning drop-off, commute to work, evening pickup, ride home.
var CycleRouteKeys = []RouteKey{
	HomeToSchool,
	SchoolToWork,
	WorkToSchool,
	SchoolToHome,
}

// ParseRouteKey validates s against the closed set of route keys.
func ParseRouteKey(s string) (RouteKey, error) {
	for _, k := range AllRouteKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown route key %q: %w", s, ErrInvalidInput)
}

// Endpoints returns the origin and destination of the leg within locs.
func (k RouteKey) Endpoints(locs Locations) (origin, destination string) {
	switch k {
	case HomeToSchool:
		return locs.Home, locs.School
	case SchoolToHome:
		return locs.School, locs.Home
	case SchoolToWork:
		return locs.School, locs.Work
	case WorkToSchool:
		return locs.Work, locs.School
	case HomeToWork:
		return locs.Home, locs.Work
	case WorkToHome:
		return locs.Work, locs.Home
	}
	return "", ""
}
