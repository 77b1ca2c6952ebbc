package insights

import (
	"testing"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreSet(overall float64, dims map[assessment.Dimension]float64) assessment.ScoreSet {
	full := make(map[assessment.Dimension]float64, len(assessment.Dimensions))
	for _, dim := range assessment.Dimensions {
		full[dim] = overall
	}
	for dim, score := range dims {
		full[dim] = score
	}
	return assessment.ScoreSet{
		DimensionScores: full,
		OverallScore:    overall,
		MaturityLevel:   assessment.ResolveMaturityLevel(overall),
	}
}

func TestBuildContextRanking(t *testing.T) {
	scores := scoreSet(3.0, map[assessment.Dimension]float64{
		assessment.DimDataInformation: 4.5,
		assessment.DimKompetensKultur: 1.5,
	})

	c := BuildContext(scores, assessment.LocaleSwedish)

	require.Len(t, c.Dimensions, len(assessment.Dimensions))
	assert.Equal(t, assessment.DimDataInformation, c.Strongest().Dimension)
	assert.Equal(t, assessment.DimKompetensKultur, c.Weakest().Dimension)
	for i := 1; i < len(c.Dimensions); i++ {
		assert.GreaterOrEqual(t, c.Dimensions[i-1].Score, c.Dimensions[i].Score)
	}
}

func TestBuildContextClassification(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		strength    bool
		improvement bool
	}{
		{"well above threshold", 4.2, true, false},
		{"exactly at strength threshold", 3.5, true, false},
		{"just below strength threshold", 3.4, false, false},
		{"top of the neutral band", 3.2, false, false},
		{"bottom of the neutral band", 3.0, false, false},
		{"just below neutral band", 2.9, false, true},
		{"clearly weak", 1.5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := scoreSet(3.2, map[assessment.Dimension]float64{
				assessment.DimKundVarde: tt.score,
			})
			c := BuildContext(scores, assessment.LocaleEnglish)

			name := assessment.DimKundVarde.Name(assessment.LocaleEnglish)
			if tt.strength {
				assert.Contains(t, c.Strengths, name)
			} else {
				assert.NotContains(t, c.Strengths, name)
			}
			if tt.improvement {
				assert.Contains(t, c.Improvements, name)
			} else {
				assert.NotContains(t, c.Improvements, name)
			}
		})
	}
}

func TestBuildContextLevel(t *testing.T) {
	scores := scoreSet(4.5, nil)
	c := BuildContext(scores, assessment.LocaleSwedish)

	assert.Equal(t, 5, c.Level.Level)
	assert.Equal(t, "Ledande", c.LevelName)
	assert.InDelta(t, 4.5, c.OverallScore, 0.001)
}

func TestBuildContextRoundsOverall(t *testing.T) {
	scores := scoreSet(3.0, nil)
	scores.OverallScore = 3.4375

	c := BuildContext(scores, assessment.LocaleSwedish)
	assert.InDelta(t, 3.4, c.OverallScore, 0.001)
}
