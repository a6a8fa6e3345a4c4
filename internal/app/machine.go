package app

import (
	"fmt"

	"millionaire-quiz/internal/domain"
)

// Advance applies one selected option to an open question and returns the
// next state. The answer key always comes from the bank.
func Advance(bank *domain.Bank, state domain.State, selected int) (domain.State, error) {
	if state.Kind != domain.StateAtQuestion {
		return state, fmt.Errorf("%w: attempt is %s", domain.ErrInvalidState, state.Kind)
	}
	if err := bank.CheckState(state.Index, state.Prize); err != nil {
		return state, err
	}
	if selected < 1 || selected > domain.OptionCount {
		return state, fmt.Errorf("%w: answer %d not in 1..%d", domain.ErrInvalidInput, selected, domain.OptionCount)
	}

	question, err := bank.Question(state.Index)
	if err != nil {
		return state, err
	}
	if selected != question.Correct {
		// Only the prize banked before this question is kept.
		return domain.State{Kind: domain.StateFailed, Index: state.Index, Prize: state.Prize}, nil
	}

	prize, err := bank.Prize(state.Index)
	if err != nil {
		return state, err
	}
	next := state.Index + 1
	if next == bank.Len() {
		return domain.State{Kind: domain.StateFinished, Index: next, Prize: prize}, nil
	}
	return domain.AtQuestion(next, prize), nil
}

func statusFor(state domain.State) domain.ResultStatus {
	if state.Kind == domain.StateFinished {
		return domain.StatusFinished
	}
	return domain.StatusFailed
}
