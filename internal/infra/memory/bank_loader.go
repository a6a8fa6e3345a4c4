package memory

import (
	"context"

	"millionaire-quiz/internal/domain"
)

// StaticBankLoader serves a bank built from in-memory questions and prizes.
type StaticBankLoader struct {
	questions []domain.Question
	prizes    []int
}

func NewStaticBankLoader(questions []domain.Question, prizes []int) *StaticBankLoader {
	return &StaticBankLoader{questions: questions, prizes: prizes}
}

// NewDefaultBankLoader serves the built-in eleven question bank.
func NewDefaultBankLoader() *StaticBankLoader {
	return NewStaticBankLoader(DefaultQuestions(), DefaultPrizes())
}

func (l *StaticBankLoader) LoadBank(_ context.Context) (*domain.Bank, error) {
	return domain.NewBank(l.questions, l.prizes)
}

// DefaultQuestions is the built-in question bank.
func DefaultQuestions() []domain.Question {
	return []domain.Question{
		{Text: "Who is Shah Rukh Khan?", Options: [4]string{"WWE Wrestler", "Plumber", "Actor", "Astronaut"}, Correct: 3},
		{Text: "What is the capital of France?", Options: [4]string{"Berlin", "Paris", "Rome", "London"}, Correct: 2},
		{Text: "Which planet is known as the Red Planet?", Options: [4]string{"Earth", "Venus", "Mars", "Jupiter"}, Correct: 3},
		{Text: "What is the largest mammal?", Options: [4]string{"Shark", "Blue Whale", "Elephant", "Giraffe"}, Correct: 2},
		{Text: "Who wrote 'Romeo and Juliet'?", Options: [4]string{"William Shakespeare", "Jane Austen", "Charles Dickens", "Homer"}, Correct: 1},
		{Text: "What is the square root of 64?", Options: [4]string{"8", "10", "6", "12"}, Correct: 1},
		{Text: "Which country is known as the Land of the Rising Sun?", Options: [4]string{"India", "South Korea", "Japan", "China"}, Correct: 3},
		{Text: "Who painted the Mona Lisa?", Options: [4]string{"Claude Monet", "Pablo Picasso", "Leonardo da Vinci", "Vincent van Gogh"}, Correct: 3},
		{Text: "What is the fastest land animal?", Options: [4]string{"Horse", "Lion", "Cheetah", "Elephant"}, Correct: 3},
		{Text: "Which ocean is the largest?", Options: [4]string{"Indian Ocean", "Pacific Ocean", "Atlantic Ocean", "Arctic Ocean"}, Correct: 2},
		{Text: "What is the smallest country in the world?", Options: [4]string{"San Marino", "Vatican City", "Monaco", "Liechtenstein"}, Correct: 2},
	}
}

// DefaultPrizes is the prize ladder aligned with DefaultQuestions.
func DefaultPrizes() []int {
	return []int{100000, 320000, 400000, 450000, 500000, 1000000, 2000000, 3000000, 4000000, 5000000, 6000000}
}
