package domain

import "tally/internal/modules/classify/dto"

// Classify places one day of work in a repo into a tooling bucket.
// beadsDate is the adoption day (empty when never adopted); work before
// adoption counts as unassisted regardless of the hub flag.
func Classify(beadsDate string, isBeadhub bool, day string) string {
	if beadsDate == "" || day < beadsDate {
		return dto.BucketNone
	}
	if isBeadhub {
		return dto.BucketBeadsHub
	}
	return dto.BucketBeads
}
