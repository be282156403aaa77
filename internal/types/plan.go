package types

// DaySchedule holds the spots assigned to one day of a trip.
type DaySchedule struct {
	Day   int    `json:"day"`
	Color string `json:"color"`
	Spots []Spot `json:"spots"`
}

// TravelPlan is a complete multi-day itinerary. Schedule never contains an empty day.
type TravelPlan struct {
	City     string        `json:"city"`
	Days     int           `json:"days"`
	Schedule []DaySchedule `json:"schedule"`
}

// SpotCount returns the number of spots assigned across all days.
func (p TravelPlan) SpotCount() int {
	total := 0
	for _, d := range p.Schedule {
		total += len(d.Spots)
	}
	return total
}

// PlanState is what a session exposes to the presentation layer.
type PlanState struct {
	Plan      *TravelPlan `json:"plan"`
	Error     *string     `json:"error"`
	IsLoading bool        `json:"isLoading"`
}

// CreatePlanRequest is the body of POST /api/v1/plans.
type CreatePlanRequest struct {
	City string `json:"city"`
	Days int    `json:"days"`
}
