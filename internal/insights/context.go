package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
)

// Classification thresholds. Dimensions scoring in [3.0, 3.5) are neither
// strength nor improvement area.
const (
	strengthThreshold    = 3.5
	improvementThreshold = 3.0
)

// DimensionScore is one ranked dimension entry in the insight context.
type DimensionScore struct {
	Dimension assessment.Dimension `json:"dimension"`
	Name      string               `json:"name"`
	Score     float64              `json:"score"`
}

// Context is the structured input handed to the narrative generator, live or
// fallback. Dimensions are ranked by score descending.
type Context struct {
	Locale       assessment.Locale        `json:"-"`
	OverallScore float64                  `json:"overall_score"`
	LevelName    string                   `json:"maturity_level"`
	Level        assessment.MaturityLevel `json:"-"`
	Dimensions   []DimensionScore         `json:"dimensions"`
	Strengths    []string                 `json:"strengths"`
	Improvements []string                 `json:"improvements"`
}

// Strongest returns the top-ranked dimension.
func (c Context) Strongest() DimensionScore { return c.Dimensions[0] }

// Weakest returns the bottom-ranked dimension.
func (c Context) Weakest() DimensionScore { return c.Dimensions[len(c.Dimensions)-1] }

// BuildContext ranks the score set and classifies strengths (score >= 3.5)
// and improvement areas (score < 3.0) for one locale. The overall score is
// carried at 1 decimal, which is how it is rendered in reports and prompts.
func BuildContext(scores assessment.ScoreSet, locale assessment.Locale) Context {
	ranked := make([]DimensionScore, 0, len(assessment.Dimensions))
	for _, dim := range assessment.Dimensions {
		ranked = append(ranked, DimensionScore{
			Dimension: dim,
			Name:      dim.Name(locale),
			Score:     scores.DimensionScores[dim],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	var strengths, improvements []string
	for _, ds := range ranked {
		switch {
		case ds.Score >= strengthThreshold:
			strengths = append(strengths, ds.Name)
		case ds.Score < improvementThreshold:
			improvements = append(improvements, ds.Name)
		}
	}

	level := assessment.LevelByNumber(scores.MaturityLevel)
	return Context{
		Locale:       locale,
		OverallScore: round1(scores.OverallScore),
		LevelName:    level.Name[locale],
		Level:        level,
		Dimensions:   ranked,
		Strengths:    strengths,
		Improvements: improvements,
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// promptLines renders the ranked dimension list for the user prompt.
func (c Context) promptLines() string {
	var b strings.Builder
	for _, ds := range c.Dimensions {
		fmt.Fprintf(&b, "- %s: %.2f\n", ds.Name, ds.Score)
	}
	return b.String()
}
