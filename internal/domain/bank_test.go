package domain

import (
	"errors"
	"testing"
)

func TestNewBankValidates(t *testing.T) {
	q := Question{Text: "2 + 2?", Options: [OptionCount]string{"3", "4", "5", "6"}, Correct: 2}

	cases := []struct {
		name      string
		questions []Question
		prizes    []int
	}{
		{"empty", nil, nil},
		{"length mismatch", []Question{q}, []int{1, 2}},
		{"correct out of range", []Question{{Text: "x", Correct: 5}}, []int{1}},
		{"correct zero", []Question{{Text: "x", Correct: 0}}, []int{1}},
		{"no text", []Question{{Correct: 1}}, []int{1}},
		{"negative prize", []Question{q}, []int{-1}},
	}
	for _, tc := range cases {
		if _, err := NewBank(tc.questions, tc.prizes); !errors.Is(err, ErrInvalidBank) {
			t.Fatalf("%s: expected ErrInvalidBank, got %v", tc.name, err)
		}
	}
}

func TestBankLookups(t *testing.T) {
	bank := mustBank(t)

	if bank.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", bank.Len())
	}
	q, err := bank.Question(1)
	if err != nil || q.Text != "q2" {
		t.Fatalf("expected q2, got %+v err=%v", q, err)
	}
	if _, err := bank.Question(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := bank.Question(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if p, _ := bank.Prize(2); p != 300 {
		t.Fatalf("expected prize 300, got %d", p)
	}
	if _, err := bank.Prize(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if p, _ := bank.BankedPrize(0); p != 0 {
		t.Fatalf("expected nothing banked before first question, got %d", p)
	}
	if p, _ := bank.BankedPrize(2); p != 200 {
		t.Fatalf("expected 200 banked before third question, got %d", p)
	}
	if bank.TopPrize() != 300 {
		t.Fatalf("expected top prize 300, got %d", bank.TopPrize())
	}
}

func TestCheckState(t *testing.T) {
	bank := mustBank(t)

	if err := bank.CheckState(0, 0); err != nil {
		t.Fatalf("expected start state valid, got %v", err)
	}
	if err := bank.CheckState(2, 200); err != nil {
		t.Fatalf("expected (2,200) valid, got %v", err)
	}
	for _, tc := range [][2]int{{-1, 0}, {3, 300}, {1, 0}, {2, 999}} {
		if err := bank.CheckState(tc[0], tc[1]); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected invalid state for %v, got %v", tc, err)
		}
	}
}

func TestBankCopiesInput(t *testing.T) {
	questions := []Question{{Text: "q1", Correct: 1}}
	prizes := []int{10}
	bank, err := NewBank(questions, prizes)
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	questions[0].Correct = 4
	prizes[0] = 0

	q, _ := bank.Question(0)
	p, _ := bank.Prize(0)
	if q.Correct != 1 || p != 10 {
		t.Fatalf("bank was mutated through caller slices: %+v prize=%d", q, p)
	}
}

func mustBank(t *testing.T) *Bank {
	t.Helper()
	bank, err := NewBank([]Question{
		{Text: "q1", Options: [OptionCount]string{"a", "b", "c", "d"}, Correct: 1},
		{Text: "q2", Options: [OptionCount]string{"a", "b", "c", "d"}, Correct: 2},
		{Text: "q3", Options: [OptionCount]string{"a", "b", "c", "d"}, Correct: 3},
	}, []int{100, 200, 300})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	return bank
}
