package insights

import "encoding/json"

// Bundle is the five-part narrative attached to a completed assessment or an
// aggregated project report. Every list holds exactly three entries.
type Bundle struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"nextSteps"`
}

const bundleListLen = 3

// wellFormed reports whether the bundle satisfies the caller contract: a
// non-empty summary and at least three non-empty entries per list. Longer
// lists are acceptable; normalize trims them.
func (b Bundle) wellFormed() bool {
	if b.Summary == "" {
		return false
	}
	for _, list := range [][]string{b.Strengths, b.Improvements, b.Recommendations, b.NextSteps} {
		if len(list) < bundleListLen {
			return false
		}
		for _, entry := range list[:bundleListLen] {
			if entry == "" {
				return false
			}
		}
	}
	return true
}

// normalize trims every list to exactly three entries.
func (b Bundle) normalize() Bundle {
	b.Strengths = b.Strengths[:bundleListLen]
	b.Improvements = b.Improvements[:bundleListLen]
	b.Recommendations = b.Recommendations[:bundleListLen]
	b.NextSteps = b.NextSteps[:bundleListLen]
	return b
}

// parseBundle extracts and decodes the first balanced JSON object found in
// model output. The model may wrap the JSON in prose or a code fence; anything
// around the first balanced {...} block is ignored.
func parseBundle(text string) (Bundle, bool) {
	block, ok := extractJSONBlock(text)
	if !ok {
		return Bundle{}, false
	}
	var b Bundle
	if err := json.Unmarshal([]byte(block), &b); err != nil {
		return Bundle{}, false
	}
	if !b.wellFormed() {
		return Bundle{}, false
	}
	return b.normalize(), true
}

// extractJSONBlock returns the first balanced top-level {...} block in s.
// Braces inside JSON strings are ignored while scanning.
func extractJSONBlock(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", false
}
