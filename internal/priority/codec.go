package priority

import "strings"

// Качественные метки приоритета
const (
	LabelCritical = "critical"
	LabelUrgent   = "urgent"
	LabelHigh     = "high"
	LabelMedium   = "medium"
	LabelLow      = "low"
)

// Нормализованные баллы для каждой метки; urgent и critical — синонимы
const (
	ScoreCritical = 1.00
	ScoreHigh     = 0.75
	ScoreMedium   = 0.50
	ScoreLow      = 0.25
)

// Encode maps a qualitative priority label to its normalized score.
// Labels are matched case-insensitively. Unknown or empty labels degrade
// to the medium score rather than failing: callers upstream (the chat
// layer) produce free-form labels and a bad one must not break scoring.
func Encode(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case LabelCritical, LabelUrgent:
		return ScoreCritical
	case LabelHigh:
		return ScoreHigh
	case LabelMedium:
		return ScoreMedium
	case LabelLow:
		return ScoreLow
	default:
		return ScoreMedium
	}
}

// Decode buckets a score back into a display label. This is deliberately
// not the inverse of Encode: scores form a continuous ranking substrate,
// labels are coarse buckets, so any score in [0.65, 0.90) reads as "high".
func Decode(score float64) string {
	switch {
	case score >= 0.90:
		return LabelCritical
	case score >= 0.65:
		return LabelHigh
	case score >= 0.40:
		return LabelMedium
	default:
		return LabelLow
	}
}

// IsHighOrAbove reports whether a label belongs to the high/urgent/critical
// family. Used by the suggestion generator to pick out orphan tasks.
func IsHighOrAbove(label string) bool {
	return Encode(label) >= ScoreHigh
}
