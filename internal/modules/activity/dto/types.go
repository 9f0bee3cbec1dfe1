package dto

import ingestdto "tally/internal/modules/ingest/dto"

type DetectInput struct {
	Events []ingestdto.Event
	// ProjectFilter restricts session detection to one project by exact
	// base-name match. Sittings are always cross-project.
	ProjectFilter string
}

type Session struct {
	Project      string
	ProjectPath  string
	StartTS      float64
	EndTS        float64
	Interactions int
	// EstimatedSeconds is the raw span plus the thinking-time prefix.
	EstimatedSeconds float64
}

type Sitting struct {
	StartTS          float64
	EndTS            float64
	Interactions     int
	EstimatedSeconds float64
	Projects         []string
}

type DetectOutput struct {
	Sessions []Session
	Sittings []Sitting
}

// DayHours is one row of the daily hours report.
type DayHours struct {
	Day          string // YYYY-MM-DD, UTC
	Sessions     int
	SessionHours float64
	Sittings     int
	SittingHours float64
}

type DailyHoursOutput struct {
	Rows []DayHours
}
