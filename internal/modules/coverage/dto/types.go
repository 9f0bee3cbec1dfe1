package dto

import ingestdto "tally/internal/modules/ingest/dto"

// Window is an inclusive range of YYYY-MM-DD days.
type Window struct {
	Start string
	End   string
}

type ComputeInput struct {
	Locations []ingestdto.LocationEvents
}

// SourceWindows is the merged per-source coverage across machines.
type SourceWindows struct {
	Source  string
	Windows []Window
}

type ComputeOutput struct {
	Sources []SourceWindows
	// Effective is the intersection across sources with data. Nil means no
	// source had any events and no day filtering should be applied.
	Effective []Window
}
