package session

import (
	"fmt"
	"math"
	"time"
)

// Grade is a qualitative band derived from the score ratio.
type Grade string

const (
	GradeExcellent        Grade = "excellent"
	GradeGood             Grade = "good"
	GradeNeedsImprovement Grade = "needs improvement"
)

// GradeFor bands score/total: >= 0.8 excellent, >= 0.6 good, otherwise
// needs improvement. Lower bounds are inclusive. Integer arithmetic keeps
// the boundaries exact.
func GradeFor(score, total int) Grade {
	if total <= 0 {
		return GradeNeedsImprovement
	}
	switch {
	case score*10 >= total*8:
		return GradeExcellent
	case score*10 >= total*6:
		return GradeGood
	default:
		return GradeNeedsImprovement
	}
}

// Label returns the message shown next to the grade.
func (g Grade) Label() string {
	switch g {
	case GradeExcellent:
		return "Excellent!"
	case GradeGood:
		return "Good Job!"
	default:
		return "Keep Practicing!"
	}
}

// Percent returns score/total as a rounded percentage.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// FormatClock renders d as MM:SS, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
