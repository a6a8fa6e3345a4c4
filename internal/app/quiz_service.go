package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"millionaire-quiz/internal/domain"
	"millionaire-quiz/internal/metrics"
)

// AttemptRepository abstracts where attempt state lives (in-memory, Redis).
// Get returns domain.ErrNotAuthenticated for an unknown ID.
type AttemptRepository interface {
	Save(ctx context.Context, attempt domain.Attempt) error
	Get(ctx context.Context, id string) (domain.Attempt, error)
}

// ResultRepository is the append-only results collection.
type ResultRepository interface {
	LoadAll(ctx context.Context) ([]domain.ResultRecord, error)
	Append(ctx context.Context, record domain.ResultRecord) error
}

// BankLoader produces the question bank once at startup.
type BankLoader interface {
	LoadBank(ctx context.Context) (*domain.Bank, error)
}

// QuestionView is everything the quiz page needs to render an open question.
type QuestionView struct {
	Name      string
	Index     int
	Number    int
	Total     int
	Prize     int
	NextPrize int
	Text      string
	Options   [domain.OptionCount]string
}

// Outcome is the result of one answer. Question is set while the attempt is
// still open, Result once it reached a terminal state.
type Outcome struct {
	State    domain.State
	Question *QuestionView
	Result   *domain.ResultRecord
}

// QuizService contains the quiz use cases.
type QuizService struct {
	bank     *domain.Bank
	attempts AttemptRepository
	results  ResultRepository
	feed     *ResultFeed
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewQuizService(bank *domain.Bank, attempts AttemptRepository, results ResultRepository, m *metrics.Metrics) *QuizService {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &QuizService{
		bank:     bank,
		attempts: attempts,
		results:  results,
		feed:     newResultFeed(),
		metrics:  m,
		now:      time.Now,
	}
}

// Bank exposes the question bank the service was built with.
func (s *QuizService) Bank() *domain.Bank {
	return s.bank
}

// Metrics exposes the service counters.
func (s *QuizService) Metrics() *metrics.Metrics {
	return s.metrics
}

// BeginAttempt binds a student name to attemptID and resets its state to the first question.
func (s *QuizService) BeginAttempt(ctx context.Context, attemptID, name string) (domain.Attempt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Attempt{}, fmt.Errorf("%w: student name is empty", domain.ErrInvalidInput)
	}
	if attemptID == "" {
		return domain.Attempt{}, fmt.Errorf("%w: attempt id is empty", domain.ErrInvalidInput)
	}

	attempt := domain.Attempt{
		ID:          attemptID,
		StudentName: name,
		State:       domain.AtQuestion(0, 0),
		UpdatedAt:   s.now(),
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return domain.Attempt{}, fmt.Errorf("save attempt: %w", err)
	}
	return attempt, nil
}

// CurrentStudent returns the name bound to attemptID.
func (s *QuizService) CurrentStudent(ctx context.Context, attemptID string) (string, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return "", err
	}
	return attempt.StudentName, nil
}

// StartQuiz puts the attempt back on the first question with nothing banked.
func (s *QuizService) StartQuiz(ctx context.Context, attemptID string) (QuestionView, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return QuestionView{}, err
	}

	attempt.State = domain.AtQuestion(0, 0)
	attempt.UpdatedAt = s.now()
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return QuestionView{}, fmt.Errorf("save attempt: %w", err)
	}
	s.metrics.IncrementAttemptsStarted()
	return s.view(attempt)
}

// CurrentQuestion renders the open question of an attempt without changing it.
func (s *QuizService) CurrentQuestion(ctx context.Context, attemptID string) (QuestionView, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return QuestionView{}, err
	}
	if attempt.State.Kind != domain.StateAtQuestion {
		return QuestionView{}, fmt.Errorf("%w: attempt is %s", domain.ErrInvalidState, attempt.State.Kind)
	}
	return s.view(attempt)
}

// SubmitAnswer runs one transition of the quiz. The submitted index and prize
// must match the server-held attempt; terminal outcomes are appended to the
// results store and published to live subscribers.
func (s *QuizService) SubmitAnswer(ctx context.Context, attemptID string, submission domain.AnswerSubmission) (Outcome, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return Outcome{}, err
	}
	if attempt.State.Kind != domain.StateAtQuestion {
		return Outcome{}, fmt.Errorf("%w: attempt is %s", domain.ErrInvalidState, attempt.State.Kind)
	}
	if submission.QuestionIndex != attempt.State.Index || submission.CurrentPrize != attempt.State.Prize {
		return Outcome{}, fmt.Errorf("%w: submitted question %d prize %d, attempt is at question %d prize %d",
			domain.ErrInvalidState, submission.QuestionIndex, submission.CurrentPrize, attempt.State.Index, attempt.State.Prize)
	}

	next, err := Advance(s.bank, attempt.State, submission.Selected)
	if err != nil {
		return Outcome{}, err
	}
	s.metrics.IncrementAnswersSubmitted()

	attempt.State = next
	attempt.UpdatedAt = s.now()

	if next.Terminal() {
		record := domain.ResultRecord{
			Name:   attempt.StudentName,
			Amount: next.Prize,
			Status: statusFor(next),
		}
		if err := s.results.Append(ctx, record); err != nil {
			return Outcome{}, fmt.Errorf("append result: %w", err)
		}
		s.feed.publish(record)
		s.metrics.IncrementOutcome(record.Status == domain.StatusFinished)

		if err := s.attempts.Save(ctx, attempt); err != nil {
			return Outcome{}, fmt.Errorf("save attempt: %w", err)
		}
		return Outcome{State: next, Result: &record}, nil
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return Outcome{}, fmt.Errorf("save attempt: %w", err)
	}
	view, err := s.view(attempt)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: next, Question: &view}, nil
}

// Results returns every stored result, oldest first.
func (s *QuizService) Results(ctx context.Context) ([]domain.ResultRecord, error) {
	records, err := s.results.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ResultRecord{}
	}
	return records, nil
}

// Subscribe returns a channel receiving each result appended from now on.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context) (<-chan domain.ResultRecord, func()) {
	return s.feed.subscribe()
}

func (s *QuizService) view(attempt domain.Attempt) (QuestionView, error) {
	question, err := s.bank.Question(attempt.State.Index)
	if err != nil {
		return QuestionView{}, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	nextPrize, err := s.bank.Prize(attempt.State.Index)
	if err != nil {
		return QuestionView{}, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	return QuestionView{
		Name:      attempt.StudentName,
		Index:     attempt.State.Index,
		Number:    attempt.State.Index + 1,
		Total:     s.bank.Len(),
		Prize:     attempt.State.Prize,
		NextPrize: nextPrize,
		Text:      question.Text,
		Options:   question.Options,
	}, nil
}
