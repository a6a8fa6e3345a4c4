package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"millionaire-quiz/internal/domain"
)

// BankLoader reads a question bank from a YAML file:
//
//	questions:
//	  - text: What is the capital of France?
//	    options: [Berlin, Paris, Rome, London]
//	    correct: 2
//	    prize: 320000
type BankLoader struct {
	path string
}

type bankFile struct {
	Questions []struct {
		Text    string   `yaml:"text"`
		Options []string `yaml:"options"`
		Correct int      `yaml:"correct"`
		Prize   int      `yaml:"prize"`
	} `yaml:"questions"`
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

func (l *BankLoader) LoadBank(_ context.Context) (*domain.Bank, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var raw bankFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidBank, l.path, err)
	}

	questions := make([]domain.Question, 0, len(raw.Questions))
	prizes := make([]int, 0, len(raw.Questions))
	for i, q := range raw.Questions {
		if len(q.Options) != domain.OptionCount {
			return nil, fmt.Errorf("%w: question %d has %d options", domain.ErrInvalidBank, i, len(q.Options))
		}
		question := domain.Question{Text: q.Text, Correct: q.Correct}
		copy(question.Options[:], q.Options)
		questions = append(questions, question)
		prizes = append(prizes, q.Prize)
	}
	return domain.NewBank(questions, prizes)
}
