package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrValueOutOfRange = errors.New("answer value out of range")
)

// ResponseSet holds one respondent's in-progress answers as an explicit value
// that is passed into and out of the scoring calls. It owns the boundary
// validation of question ids and answer values; the scoring engine itself
// assumes clean input. Later writes for the same question overwrite earlier
// ones.
type ResponseSet struct {
	answers map[int]int
}

// NewResponseSet returns an empty response set.
func NewResponseSet() *ResponseSet {
	return &ResponseSet{answers: make(map[int]int)}
}

// NewResponseSetFrom seeds a response set from already-persisted answers,
// dropping anything outside the catalog or value range.
func NewResponseSetFrom(answers map[int]int) *ResponseSet {
	rs := NewResponseSet()
	for id, v := range answers {
		_ = rs.Set(id, v)
	}
	return rs
}

// Get returns the recorded value for a question, if any.
func (rs *ResponseSet) Get(questionID int) (int, bool) {
	v, ok := rs.answers[questionID]
	return v, ok
}

// Set records an answer, overwriting any earlier answer to the same question.
func (rs *ResponseSet) Set(questionID, value int) error {
	if _, ok := questionsByID[questionID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if value < MinAnswerValue || value > MaxAnswerValue {
		return fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	rs.answers[questionID] = value
	return nil
}

// Reset discards all recorded answers.
func (rs *ResponseSet) Reset() {
	rs.answers = make(map[int]int)
}

// IsComplete reports whether all 32 questions have an answer.
func (rs *ResponseSet) IsComplete() bool {
	return len(rs.answers) == QuestionCount
}

// Answered returns the number of questions answered so far.
func (rs *ResponseSet) Answered() int {
	return len(rs.answers)
}

// Values returns a copy of the recorded answers keyed by question id.
func (rs *ResponseSet) Values() map[int]int {
	out := make(map[int]int, len(rs.answers))
	for id, v := range rs.answers {
		out[id] = v
	}
	return out
}

// Scores computes the aggregate score set for the current answers.
func (rs *ResponseSet) Scores() ScoreSet {
	return ComputeScores(rs.answers)
}
