package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBundleJSON = `{
	"summary": "A short summary.",
	"strengths": ["s1", "s2", "s3"],
	"improvements": ["i1", "i2", "i3"],
	"recommendations": ["r1", "r2", "r3"],
	"nextSteps": ["n1", "n2", "n3"]
}`

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", `Here you go: {"a":1} hope it helps`, `{"a":1}`, true},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"nested objects", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}"}`, `{"a":"}"}`, true},
		{"escaped quote inside string", `{"a":"\"}"}`, `{"a":"\"}"}`, true},
		{"only first block", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"no object", "no json here", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONBlock(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBundle(t *testing.T) {
	t.Run("valid bundle", func(t *testing.T) {
		b, ok := parseBundle(validBundleJSON)
		require.True(t, ok)
		assert.Equal(t, "A short summary.", b.Summary)
		assert.Equal(t, []string{"s1", "s2", "s3"}, b.Strengths)
	})

	t.Run("bundle wrapped in prose", func(t *testing.T) {
		_, ok := parseBundle("Sure! Here is the result:\n" + validBundleJSON + "\nLet me know.")
		assert.True(t, ok)
	})

	t.Run("long lists are trimmed to three", func(t *testing.T) {
		b, ok := parseBundle(`{
			"summary": "s",
			"strengths": ["1", "2", "3", "4", "5"],
			"improvements": ["1", "2", "3"],
			"recommendations": ["1", "2", "3"],
			"nextSteps": ["1", "2", "3"]
		}`)
		require.True(t, ok)
		assert.Len(t, b.Strengths, 3)
	})

	t.Run("short list is rejected", func(t *testing.T) {
		_, ok := parseBundle(`{
			"summary": "s",
			"strengths": ["1", "2"],
			"improvements": ["1", "2", "3"],
			"recommendations": ["1", "2", "3"],
			"nextSteps": ["1", "2", "3"]
		}`)
		assert.False(t, ok)
	})

	t.Run("empty summary is rejected", func(t *testing.T) {
		_, ok := parseBundle(`{
			"summary": "",
			"strengths": ["1", "2", "3"],
			"improvements": ["1", "2", "3"],
			"recommendations": ["1", "2", "3"],
			"nextSteps": ["1", "2", "3"]
		}`)
		assert.False(t, ok)
	})

	t.Run("empty entry is rejected", func(t *testing.T) {
		_, ok := parseBundle(`{
			"summary": "s",
			"strengths": ["1", "", "3"],
			"improvements": ["1", "2", "3"],
			"recommendations": ["1", "2", "3"],
			"nextSteps": ["1", "2", "3"]
		}`)
		assert.False(t, ok)
	})

	t.Run("not json", func(t *testing.T) {
		_, ok := parseBundle("I could not produce the report.")
		assert.False(t, ok)
	})
}
