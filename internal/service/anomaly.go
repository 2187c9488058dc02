package service

import (
	"fmt"
	"math"
)

// AnomalyThreshold is the relative change between consecutive scores that gets flagged
const AnomalyThreshold = 0.30

// NoAnomaliesMessage is the single line reported when nothing is flagged
const NoAnomaliesMessage = "No significant changes detected."

// AnomalyKind tells a drop from an improvement
type AnomalyKind string

const (
	AnomalyDrop        AnomalyKind = "drop"
	AnomalyImprovement AnomalyKind = "improvement"
)

// Anomaly is a consecutive pair of scores whose relative change crossed the threshold
type Anomaly struct {
	// Index of the later score in the chronological sequence
	Index    int
	Previous int
	Current  int
	Change   float64
	Kind     AnomalyKind
}

// DetectAnomalies compares each score with the one before it. scores must be
// ordered oldest to newest. Pairs whose earlier score is not positive are skipped.
func DetectAnomalies(scores []int) []Anomaly {
	var anomalies []Anomaly
	for i := 1; i < len(scores); i++ {
		prev, curr := scores[i-1], scores[i]
		if prev <= 0 {
			continue
		}

		change := float64(curr-prev) / float64(prev)
		if math.Abs(change) < AnomalyThreshold {
			continue
		}

		kind := AnomalyImprovement
		if change < 0 {
			kind = AnomalyDrop
		}
		anomalies = append(anomalies, Anomaly{
			Index:    i,
			Previous: prev,
			Current:  curr,
			Change:   change,
			Kind:     kind,
		})
	}
	return anomalies
}

// DescribeAnomalies renders one line per anomaly, or NoAnomaliesMessage
func DescribeAnomalies(anomalies []Anomaly) []string {
	if len(anomalies) == 0 {
		return []string{NoAnomaliesMessage}
	}

	lines := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		lines = append(lines, fmt.Sprintf("Test %d: significant %s of %+.0f%% (%d -> %d)",
			a.Index+1, a.Kind, a.Change*100, a.Previous, a.Current))
	}
	return lines
}
