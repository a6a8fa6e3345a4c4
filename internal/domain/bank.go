package domain

import "fmt"

// Bank is the ordered question list with its index-aligned prize ladder.
// It is immutable once built.
type Bank struct {
	questions []Question
	prizes    []int
}

// NewBank validates and copies questions and prizes.
func NewBank(questions []Question, prizes []int) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	if len(questions) != len(prizes) {
		return nil, fmt.Errorf("%w: %d questions but %d prizes", ErrInvalidBank, len(questions), len(prizes))
	}
	for i, q := range questions {
		if q.Text == "" {
			return nil, fmt.Errorf("%w: question %d has no text", ErrInvalidBank, i)
		}
		if q.Correct < 1 || q.Correct > OptionCount {
			return nil, fmt.Errorf("%w: question %d correct option %d not in 1..%d", ErrInvalidBank, i, q.Correct, OptionCount)
		}
		if prizes[i] < 0 {
			return nil, fmt.Errorf("%w: prize %d is negative", ErrInvalidBank, i)
		}
	}
	b := &Bank{
		questions: make([]Question, len(questions)),
		prizes:    make([]int, len(prizes)),
	}
	copy(b.questions, questions)
	copy(b.prizes, prizes)
	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns the question at index i.
func (b *Bank) Question(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("question %d: %w", i, ErrOutOfRange)
	}
	return b.questions[i], nil
}

// Prize returns the reward for answering question i correctly.
func (b *Bank) Prize(i int) (int, error) {
	if i < 0 || i >= len(b.prizes) {
		return 0, fmt.Errorf("prize %d: %w", i, ErrOutOfRange)
	}
	return b.prizes[i], nil
}

// BankedPrize is the amount locked in before question i is answered.
func (b *Bank) BankedPrize(i int) (int, error) {
	if i < 0 || i > len(b.prizes) {
		return 0, fmt.Errorf("banked prize %d: %w", i, ErrOutOfRange)
	}
	if i == 0 {
		return 0, nil
	}
	return b.prizes[i-1], nil
}

// TopPrize is the amount awarded for finishing the quiz.
func (b *Bank) TopPrize() int {
	return b.prizes[len(b.prizes)-1]
}

// CheckState reports ErrInvalidState unless (index, prize) is a position an
// attempt can actually reach while a question is open.
func (b *Bank) CheckState(index, prize int) error {
	if index < 0 || index >= len(b.questions) {
		return fmt.Errorf("%w: question index %d outside 0..%d", ErrInvalidState, index, len(b.questions)-1)
	}
	banked, _ := b.BankedPrize(index)
	if prize != banked {
		return fmt.Errorf("%w: prize %d does not match banked %d at question %d", ErrInvalidState, prize, banked, index)
	}
	return nil
}

// Questions returns a copy of the questions in order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Prizes returns a copy of the prize ladder.
func (b *Bank) Prizes() []int {
	out := make([]int, len(b.prizes))
	copy(out, b.prizes)
	return out
}
