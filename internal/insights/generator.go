package insights

import (
	"context"
	"errors"
	"fmt"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
)

// ErrInvalidScoreSet is the only failure Generate propagates: the caller
// handed in a malformed score set. Model-call failures never surface here.
var ErrInvalidScoreSet = errors.New("invalid score set")

// Generator produces the narrative insight bundle for a score set. From the
// caller's perspective a well-formed score set always yields a well-formed
// bundle: the live model is tried when configured, and any failure there is
// logged and recovered by the deterministic fallback.
//
// Implementations are safe for concurrent use; each call operates only on its
// own input. Tests inject a stub.
type Generator interface {
	Generate(ctx context.Context, scores assessment.ScoreSet, locale assessment.Locale) (Bundle, error)
}

type generator struct {
	client *OpenAIClient // nil when no API credential is configured
	logger utils.Logger
}

// NewGenerator wires a generator. Pass a nil client to run fallback-only.
func NewGenerator(client *OpenAIClient, logger utils.Logger) Generator {
	return &generator{client: client, logger: logger}
}

func (g *generator) Generate(ctx context.Context, scores assessment.ScoreSet, locale assessment.Locale) (Bundle, error) {
	if err := validateScoreSet(scores); err != nil {
		return Bundle{}, err
	}

	ictx := BuildContext(scores, locale)

	if g.client != nil {
		text, err := g.client.Complete(ctx, systemPrompt[locale], userPrompt(ictx))
		if err != nil {
			g.logger.WarnContext(ctx, "Insight model call failed, using fallback", "error", err)
		} else if bundle, ok := parseBundle(text); ok {
			return bundle, nil
		} else {
			g.logger.WarnContext(ctx, "Insight model returned unusable output, using fallback")
		}
	}

	return Fallback(ictx), nil
}

func validateScoreSet(scores assessment.ScoreSet) error {
	if len(scores.DimensionScores) == 0 {
		return fmt.Errorf("%w: missing dimension scores", ErrInvalidScoreSet)
	}
	for _, dim := range assessment.Dimensions {
		score, ok := scores.DimensionScores[dim]
		if !ok {
			return fmt.Errorf("%w: missing dimension %s", ErrInvalidScoreSet, dim)
		}
		if score < 0 || score > assessment.MaxAnswerValue {
			return fmt.Errorf("%w: dimension %s score %.2f out of range", ErrInvalidScoreSet, dim, score)
		}
	}
	if scores.OverallScore < 0 || scores.OverallScore > assessment.MaxAnswerValue {
		return fmt.Errorf("%w: overall score %.2f out of range", ErrInvalidScoreSet, scores.OverallScore)
	}
	if scores.MaturityLevel < 1 || scores.MaturityLevel > len(assessment.MaturityLevels) {
		return fmt.Errorf("%w: maturity level %d out of range", ErrInvalidScoreSet, scores.MaturityLevel)
	}
	return nil
}

var systemPrompt = map[assessment.Locale]string{
	assessment.LocaleSwedish: "Du är en erfaren rådgivare inom AI-mognad och digital transformation i svenska organisationer. " +
		"Du svarar alltid på svenska med en praktisk, konkret och handlingsorienterad ton, utan teknisk jargong.",
	assessment.LocaleEnglish: "You are an experienced advisor on AI maturity and digital transformation. " +
		"You always answer in English with a practical, concrete and action-oriented tone, free of technical jargon.",
}

var promptInstructions = map[assessment.Locale]string{
	assessment.LocaleSwedish: "Returnera ENDAST giltig JSON (ingen markdown) med exakt dessa fem nycklar:\n" +
		`{ "summary": string, "strengths": [3 korta punkter], "improvements": [3 punkter], "recommendations": [3 punkter], "nextSteps": [3 punkter] }`,
	assessment.LocaleEnglish: "Return ONLY valid JSON (no markdown) with exactly these five keys:\n" +
		`{ "summary": string, "strengths": [3 short bullets], "improvements": [3 bullets], "recommendations": [3 bullets], "nextSteps": [3 bullets] }`,
}

func userPrompt(c Context) string {
	header := map[assessment.Locale]string{
		assessment.LocaleSwedish: "Resultat från AI-mognadsmätning:\nTotalt: %.1f av 5 (nivå: %s)\nDimensioner (högst först):\n%sStyrkor: %s\nFörbättringsområden: %s\n\n",
		assessment.LocaleEnglish: "AI maturity assessment result:\nOverall: %.1f out of 5 (level: %s)\nDimensions (highest first):\n%sStrengths: %s\nImprovement areas: %s\n\n",
	}[c.Locale]

	return fmt.Sprintf(header,
		c.OverallScore, c.LevelName, c.promptLines(),
		joinOrDash(c.Strengths), joinOrDash(c.Improvements),
	) + promptInstructions[c.Locale]
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	out := items[0]
	for _, s := range items[1:] {
		out += ", " + s
	}
	return out
}
