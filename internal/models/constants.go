package models

const (
	OrderStatusPlaced  = "placed"
	OrderStatusBrewing = "brewing"
	OrderStatusServed  = "served"

	MoodDelighted    = "delighted"
	MoodPleased      = "pleased"
	MoodNeutral      = "neutral"
	MoodDisappointed = "disappointed"
)

// MoodFor buckets a 0-5 satisfaction into a display mood.
func MoodFor(satisfaction float64) string {
	switch {
	case satisfaction >= 4.5:
		return MoodDelighted
	case satisfaction >= 3.5:
		return MoodPleased
	case satisfaction >= 2.5:
		return MoodNeutral
	default:
		return MoodDisappointed
	}
}
