package handlers

import (
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
)

func toTravelTimeSet(in map[string]dto.TravelLeg) (domain.TravelTimeSet, error) {
	out := make(domain.TravelTimeSet, len(in))
	for name, leg := range in {
		key, err := domain.ParseRouteKey(name)
		if err != nil {
			return nil, err
		}
		out[key] = domain.TravelLeg{
			Distance:        leg.Distance,
			Duration:        leg.Duration,
			DurationSeconds: leg.DurationValue,
		}
	}
	return out, nil
}

func toTravelTimesDTO(in domain.TravelTimeSet) map[string]dto.TravelLeg {
	out := make(map[string]dto.TravelLeg, len(in))
	for key, leg := range in {
		out[string(key)] = dto.TravelLeg{
			Distance:      leg.Distance,
			Duration:      leg.Duration,
			DurationValue: leg.DurationSeconds,
		}
	}
	return out
}

func toTimeLossDTO(r domain.TimeLossReport) dto.TimeLoss {
	return dto.TimeLoss{
		Daily: dto.DailyLoss{
			Seconds: r.Daily.Seconds,
			Minutes: r.Daily.Minutes,
			Hours:   r.Daily.Hours,
		},
		Monthly: dto.MonthlyLoss{
			Hours: r.Monthly.Hours,
			Days:  r.Monthly.Days,
		},
		Yearly: dto.YearlyLoss{
			Hours: r.Yearly.Hours,
			Days:  r.Yearly.Days,
			Weeks: r.Yearly.Weeks,
		},
	}
}

func toLocations(p dto.LocationsPayload) domain.Locations {
	return domain.Locations{Home: p.Home, School: p.School, Work: p.Work}
}

func toLocationsDTO(l domain.Locations) dto.LocationsPayload {
	return dto.LocationsPayload{Home: l.Home, School: l.School, Work: l.Work}
}
