package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPartition(t *testing.T) {
	require.Len(t, Questions, QuestionCount)

	seen := make(map[int]bool)
	perDim := make(map[Dimension]int)
	for _, q := range Questions {
		assert.False(t, seen[q.ID], "duplicate question id %d", q.ID)
		seen[q.ID] = true
		assert.GreaterOrEqual(t, q.ID, 1)
		assert.LessOrEqual(t, q.ID, QuestionCount)
		perDim[q.Dimension]++
		assert.NotEmpty(t, q.Text[LocaleSwedish])
		assert.NotEmpty(t, q.Text[LocaleEnglish])
	}

	require.Len(t, perDim, len(Dimensions))
	for _, dim := range Dimensions {
		assert.Equal(t, QuestionsPerDimension, perDim[dim], "dimension %s", dim)
	}
}

func TestMaturityRangesCoverScale(t *testing.T) {
	require.Len(t, MaturityLevels, 5)
	assert.Equal(t, 1.0, MaturityLevels[0].Min)
	assert.Equal(t, 5.0, MaturityLevels[len(MaturityLevels)-1].Max)

	for i := 1; i < len(MaturityLevels); i++ {
		prev, cur := MaturityLevels[i-1], MaturityLevels[i]
		assert.Greater(t, cur.Min, prev.Max, "ranges must not overlap")
		// There is no declared range between prev.Max and cur.Min; resolution
		// assigns that gap upward to cur.
		assert.Equal(t, cur.Level, ResolveMaturityLevel(prev.Max+0.05))
	}
}

func TestResolveMaturityLevel(t *testing.T) {
	tests := []struct {
		score float64
		level int
	}{
		{0, 1},
		{1.0, 1},
		{1.8, 1},
		{1.85, 2}, // just above tier 1's upper bound
		{1.9, 2},
		{2.6, 2},
		{2.7, 3},
		{3.0, 3},
		{3.4, 3},
		{3.5, 4},
		{4.2, 4},
		{4.3, 5},
		{5.0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, ResolveMaturityLevel(tt.score), "score %.2f", tt.score)
	}
}

func TestComputeScoresSingleDimension(t *testing.T) {
	// Only strategiLedarskap answered, all fives.
	scores := ComputeScores(map[int]int{1: 5, 2: 5, 3: 5, 4: 5})

	assert.Equal(t, 5.0, scores.DimensionScores[DimStrategiLedarskap])
	for _, dim := range Dimensions {
		if dim == DimStrategiLedarskap {
			continue
		}
		assert.Equal(t, 0.0, scores.DimensionScores[dim], "dimension %s", dim)
	}
	assert.Equal(t, 5.0, scores.OverallScore)
	assert.Equal(t, 5, scores.MaturityLevel)
}

func TestComputeScoresAllThrees(t *testing.T) {
	responses := make(map[int]int, QuestionCount)
	for id := 1; id <= QuestionCount; id++ {
		responses[id] = 3
	}
	scores := ComputeScores(responses)

	for _, dim := range Dimensions {
		assert.Equal(t, 3.0, scores.DimensionScores[dim])
	}
	assert.Equal(t, 3.0, scores.OverallScore)
	assert.Equal(t, 3, scores.MaturityLevel)
}

func TestComputeScoresEmpty(t *testing.T) {
	scores := ComputeScores(map[int]int{})

	for _, dim := range Dimensions {
		assert.Equal(t, 0.0, scores.DimensionScores[dim])
	}
	assert.Equal(t, 0.0, scores.OverallScore)
	assert.Equal(t, 1, scores.MaturityLevel)
}

func TestComputeScoresOverallIsMeanOfRawAnswers(t *testing.T) {
	// Eight answers across two dimensions with uneven spread: the overall is
	// the mean of the raw values, not the mean of the dimension averages.
	responses := map[int]int{1: 5, 2: 5, 3: 5, 4: 5, 5: 1, 6: 1, 7: 1, 8: 5}
	scores := ComputeScores(responses)

	assert.Equal(t, 5.0, scores.DimensionScores[DimStrategiLedarskap])
	assert.Equal(t, 2.0, scores.DimensionScores[DimDataInformation])
	assert.Equal(t, 3.5, scores.OverallScore) // 28/8, not (5.0+2.0)/2
}

func TestComputeScoresRounding(t *testing.T) {
	// 5+4+4 answered in one dimension: 13/3 = 4.3333... rounds to 4.33.
	scores := ComputeScores(map[int]int{1: 5, 2: 4, 3: 4})
	assert.Equal(t, 4.33, scores.DimensionScores[DimStrategiLedarskap])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.33, Round2(13.0/3.0))
	assert.Equal(t, 3.44, Round2(3.4375))
	assert.Equal(t, 3.13, Round2(3.125)) // half rounds away from zero
	assert.Equal(t, -3.13, Round2(-3.125))
	assert.Equal(t, 3.0, Round2(3.0))
}

func TestComputeScoresIdempotent(t *testing.T) {
	responses := map[int]int{1: 2, 5: 4, 9: 3, 17: 5, 32: 1}
	assert.Equal(t, ComputeScores(responses), ComputeScores(responses))
}

func TestResponseSetBoundaryValidation(t *testing.T) {
	rs := NewResponseSet()

	assert.ErrorIs(t, rs.Set(0, 3), ErrUnknownQuestion)
	assert.ErrorIs(t, rs.Set(33, 3), ErrUnknownQuestion)
	assert.ErrorIs(t, rs.Set(1, 0), ErrValueOutOfRange)
	assert.ErrorIs(t, rs.Set(1, 6), ErrValueOutOfRange)

	require.NoError(t, rs.Set(1, 2))
	v, ok := rs.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	// Upsert: a later write overwrites the earlier one.
	require.NoError(t, rs.Set(1, 4))
	v, _ = rs.Get(1)
	assert.Equal(t, 4, v)
	assert.Equal(t, 1, rs.Answered())
}

func TestResponseSetCompletion(t *testing.T) {
	rs := NewResponseSet()
	for id := 1; id <= QuestionCount-1; id++ {
		require.NoError(t, rs.Set(id, 3))
	}
	assert.False(t, rs.IsComplete())
	assert.Equal(t, QuestionCount-1, rs.Answered())

	require.NoError(t, rs.Set(QuestionCount, 3))
	assert.True(t, rs.IsComplete())

	rs.Reset()
	assert.Equal(t, 0, rs.Answered())
	assert.False(t, rs.IsComplete())
}
