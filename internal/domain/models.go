package domain

import "time"

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// Question is one multiple choice question. Correct is 1-based.
type Question struct {
	Text    string              `json:"text" yaml:"text"`
	Options [OptionCount]string `json:"options" yaml:"options"`
	Correct int                 `json:"correct" yaml:"correct"`
}

// StateKind enumerates the positions of the quiz state machine.
type StateKind string

const (
	StateAwaitingStart StateKind = "awaiting_start"
	StateAtQuestion    StateKind = "at_question"
	StateFinished      StateKind = "finished"
	StateFailed        StateKind = "failed"
)

// State is a position of an attempt. Index is meaningful only for AtQuestion;
// Prize is the banked amount.
type State struct {
	Kind  StateKind `json:"kind"`
	Index int       `json:"index"`
	Prize int       `json:"prize"`
}

// AtQuestion builds the state for an unanswered question.
func AtQuestion(index, prize int) State {
	return State{Kind: StateAtQuestion, Index: index, Prize: prize}
}

// Terminal reports whether no further answers are accepted.
func (s State) Terminal() bool {
	return s.Kind == StateFinished || s.Kind == StateFailed
}

// Attempt is one student's run through the quiz, keyed by an opaque session token.
type Attempt struct {
	ID          string    `json:"id"`
	StudentName string    `json:"studentName"`
	State       State     `json:"state"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AnswerSubmission is what the browser posts back for a question.
type AnswerSubmission struct {
	QuestionIndex int
	CurrentPrize  int
	Selected      int
}

// ResultStatus is the terminal outcome stored with a result.
type ResultStatus string

const (
	StatusFinished ResultStatus = "finished"
	StatusFailed   ResultStatus = "failed"
)

// ResultRecord is an immutable entry in the results collection.
type ResultRecord struct {
	Name   string       `json:"name"`
	Amount int          `json:"amount"`
	Status ResultStatus `json:"status"`
}

// Valid reports whether the status is one of the two terminal outcomes.
func (s ResultStatus) Valid() bool {
	return s == StatusFinished || s == StatusFailed
}
