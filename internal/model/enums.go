package model

import "strings"

// Technology is the radio access technology of a tower.
type Technology string

const (
	Tech2G      Technology = "2G"
	Tech3G      Technology = "3G"
	Tech4G      Technology = "4G"
	Tech5G      Technology = "5G"
	TechUnknown Technology = "unknown"
)

// ParseTechnology normalizes a free-form technology label. Unrecognized
// values map to TechUnknown rather than failing; tower feeds are messy.
func ParseTechnology(s string) Technology {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2G", "GSM", "EDGE":
		return Tech2G
	case "3G", "UMTS", "WCDMA", "HSPA":
		return Tech3G
	case "4G", "LTE":
		return Tech4G
	case "5G", "NR":
		return Tech5G
	default:
		return TechUnknown
	}
}

// Quality is the signal-quality band of a grid point.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

// QualityFor classifies a received signal level into a quality band using
// fixed dBm thresholds.
func QualityFor(signalDBm float64) Quality {
	switch {
	case signalDBm >= -70:
		return QualityExcellent
	case signalDBm >= -85:
		return QualityGood
	case signalDBm >= -95:
		return QualityFair
	default:
		return QualityPoor
	}
}

// Priority classifies a recommendation by urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority; high sorts before medium before
// low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
