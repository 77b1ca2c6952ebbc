package assessment

import "math"

// ScoreSet is the derived aggregate for one response set: per-dimension
// averages, the overall average and the resolved maturity tier. It is computed
// fresh from responses and only persisted as a cache.
type ScoreSet struct {
	DimensionScores map[Dimension]float64 `json:"dimension_scores"`
	OverallScore    float64               `json:"overall_score"`
	MaturityLevel   int                   `json:"maturity_level"`
}

// ComputeScores aggregates a (possibly partial) response map into a ScoreSet.
//
// Each dimension score is the mean of the answered values among that
// dimension's four question ids, 0 when none are answered. The overall score
// is the mean of all answered values counted once each; it is NOT the mean of
// the dimension scores, so the two do not coincide on partial response sets.
// ComputeScores never fails: missing data degrades to 0. Inputs are assumed
// boundary-validated (see ResponseSet).
func ComputeScores(responses map[int]int) ScoreSet {
	dimScores := make(map[Dimension]float64, len(Dimensions))

	for _, dim := range Dimensions {
		sum, n := 0, 0
		for _, id := range questionsByDimension[dim] {
			if v, ok := responses[id]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			dimScores[dim] = 0
			continue
		}
		dimScores[dim] = Round2(float64(sum) / float64(n))
	}

	total, answered := 0, 0
	for id, v := range responses {
		if _, ok := questionsByID[id]; !ok {
			continue
		}
		total += v
		answered++
	}

	overall := 0.0
	if answered > 0 {
		overall = Round2(float64(total) / float64(answered))
	}

	return ScoreSet{
		DimensionScores: dimScores,
		OverallScore:    overall,
		MaturityLevel:   ResolveMaturityLevel(overall),
	}
}

// Round2 rounds half away from zero to 2 decimals, the storage and display
// precision for all scores.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
