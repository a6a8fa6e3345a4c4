package app_test

import (
	"context"
	"errors"
	"testing"

	"millionaire-quiz/internal/app"
	"millionaire-quiz/internal/domain"
	"millionaire-quiz/internal/infra/memory"
	"millionaire-quiz/internal/metrics"
)

func TestBeginAttemptRejectsBlankNames(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := service.BeginAttempt(ctx, "a1", name); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", name, err)
		}
	}
	if _, err := service.CurrentStudent(ctx, "a1"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected no student after rejected names, got %v", err)
	}

	attempt, err := service.BeginAttempt(ctx, "a1", "  Ana ")
	if err != nil {
		t.Fatalf("begin attempt: %v", err)
	}
	if attempt.StudentName != "Ana" || attempt.State != domain.AtQuestion(0, 0) {
		t.Fatalf("expected Ana at (0,0), got %+v", attempt)
	}
	name, err := service.CurrentStudent(ctx, "a1")
	if err != nil || name != "Ana" {
		t.Fatalf("expected current student Ana, got %q err=%v", name, err)
	}
}

func TestBeginAttemptResetsProgress(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	begin(t, service, "a1", "Ana")

	answer(t, service, "a1", 0, 0, correctAnswer(t, service, 0))
	attempt, err := service.BeginAttempt(ctx, "a1", "Ana")
	if err != nil {
		t.Fatalf("begin again: %v", err)
	}
	if attempt.State != domain.AtQuestion(0, 0) {
		t.Fatalf("expected reset to (0,0), got %+v", attempt.State)
	}
}

func TestStartQuizRequiresStudent(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.StartQuiz(context.Background(), "missing"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestStartQuizShowsFirstQuestion(t *testing.T) {
	service, _ := newTestService(t)
	begin(t, service, "a1", "Ana")

	view, err := service.StartQuiz(context.Background(), "a1")
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	first := memory.DefaultQuestions()[0]
	if view.Name != "Ana" || view.Index != 0 || view.Prize != 0 || view.Number != 1 || view.Total != 11 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Text != first.Text || view.Options != first.Options {
		t.Fatalf("expected first question, got %+v", view)
	}
	if view.NextPrize != 100000 {
		t.Fatalf("expected next prize 100000, got %d", view.NextPrize)
	}
}

func TestCorrectAnswerAdvances(t *testing.T) {
	service, store := newTestService(t)
	begin(t, service, "a1", "Ana")

	outcome := answer(t, service, "a1", 0, 0, correctAnswer(t, service, 0))
	if outcome.State != domain.AtQuestion(1, 100000) {
		t.Fatalf("expected (1,100000), got %+v", outcome.State)
	}
	if outcome.Question == nil || outcome.Question.Index != 1 || outcome.Question.Prize != 100000 {
		t.Fatalf("expected view for question 1, got %+v", outcome.Question)
	}
	if outcome.Result != nil {
		t.Fatalf("no result expected mid-quiz, got %+v", outcome.Result)
	}
	if records, _ := store.LoadAll(context.Background()); len(records) != 0 {
		t.Fatalf("expected no records mid-quiz, got %+v", records)
	}
}

func TestWrongAnswerOnFirstQuestionBanksNothing(t *testing.T) {
	service, store := newTestService(t)
	begin(t, service, "a1", "Ana")

	outcome := answer(t, service, "a1", 0, 0, wrongAnswer(t, service, 0))
	if outcome.State.Kind != domain.StateFailed || outcome.State.Prize != 0 {
		t.Fatalf("expected failed with 0, got %+v", outcome.State)
	}
	assertLastRecord(t, store, domain.ResultRecord{Name: "Ana", Amount: 0, Status: domain.StatusFailed}, 1)
}

func TestFailingKeepsPrizeBankedBeforeQuestion(t *testing.T) {
	service, store := newTestService(t)
	begin(t, service, "a1", "Ana")

	answer(t, service, "a1", 0, 0, correctAnswer(t, service, 0))
	answer(t, service, "a1", 1, 100000, correctAnswer(t, service, 1))
	outcome := answer(t, service, "a1", 2, 320000, wrongAnswer(t, service, 2))

	if outcome.Result == nil {
		t.Fatalf("expected a result on failure")
	}
	want := domain.ResultRecord{Name: "Ana", Amount: 320000, Status: domain.StatusFailed}
	if *outcome.Result != want {
		t.Fatalf("expected %+v, got %+v", want, *outcome.Result)
	}
	assertLastRecord(t, store, want, 1)
}

func TestAnsweringEverythingFinishes(t *testing.T) {
	service, store := newTestService(t)
	begin(t, service, "a1", "Ben")

	bank := service.Bank()
	prize := 0
	var outcome app.Outcome
	for i := 0; i < bank.Len(); i++ {
		outcome = answer(t, service, "a1", i, prize, correctAnswer(t, service, i))
		prize, _ = bank.Prize(i)
	}

	if outcome.State.Kind != domain.StateFinished || outcome.State.Prize != 6000000 {
		t.Fatalf("expected finished with 6000000, got %+v", outcome.State)
	}
	assertLastRecord(t, store, domain.ResultRecord{Name: "Ben", Amount: bank.TopPrize(), Status: domain.StatusFinished}, 1)

	snap := service.Metrics().GetSnapshot()
	if snap.AttemptsFinished != 1 || snap.AnswersSubmitted != int64(bank.Len()) {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
}

func TestAnswerOutOfRangeIsInvalidInput(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	begin(t, service, "a1", "Ana")

	for _, selected := range []int{0, 5, -1} {
		_, err := service.SubmitAnswer(ctx, "a1", domain.AnswerSubmission{QuestionIndex: 0, CurrentPrize: 0, Selected: selected})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %d, got %v", selected, err)
		}
	}
	if records, _ := store.LoadAll(ctx); len(records) != 0 {
		t.Fatalf("invalid answers must not record results, got %+v", records)
	}
	if _, err := service.CurrentQuestion(ctx, "a1"); err != nil {
		t.Fatalf("attempt should still be open: %v", err)
	}
}

func TestTamperedStateIsRejected(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	begin(t, service, "a1", "Ana")

	cases := []domain.AnswerSubmission{
		{QuestionIndex: 10, CurrentPrize: 5000000, Selected: 1},
		{QuestionIndex: 11, CurrentPrize: 6000000, Selected: 1},
		{QuestionIndex: -1, CurrentPrize: 0, Selected: 1},
		{QuestionIndex: 0, CurrentPrize: 320000, Selected: 1},
	}
	for _, sub := range cases {
		if _, err := service.SubmitAnswer(ctx, "a1", sub); !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected invalid state for %+v, got %v", sub, err)
		}
	}
	if records, _ := store.LoadAll(ctx); len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestNoAnswersAfterTerminalOutcome(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	begin(t, service, "a1", "Ana")

	answer(t, service, "a1", 0, 0, wrongAnswer(t, service, 0))
	_, err := service.SubmitAnswer(ctx, "a1", domain.AnswerSubmission{QuestionIndex: 0, CurrentPrize: 0, Selected: 1})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state after failure, got %v", err)
	}

	if _, err := service.StartQuiz(ctx, "a1"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, err := service.CurrentQuestion(ctx, "a1"); err != nil {
		t.Fatalf("expected open question after restart: %v", err)
	}
}

func TestSubmitRequiresStudent(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.SubmitAnswer(context.Background(), "nobody", domain.AnswerSubmission{Selected: 1})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestResultsListsEveryAttempt(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	records, err := service.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", records)
	}

	begin(t, service, "a1", "Ana")
	answer(t, service, "a1", 0, 0, wrongAnswer(t, service, 0))
	begin(t, service, "a1", "Ana")
	answer(t, service, "a1", 0, 0, wrongAnswer(t, service, 0))

	records, _ = service.Results(ctx)
	if len(records) != 2 || records[0].Name != "Ana" || records[1].Name != "Ana" {
		t.Fatalf("expected the same student twice, got %+v", records)
	}
}

func TestSubscribeReceivesResults(t *testing.T) {
	service, _ := newTestService(t)
	ch, cancel := service.Subscribe(context.Background())
	defer cancel()

	begin(t, service, "a1", "Ana")
	answer(t, service, "a1", 0, 0, wrongAnswer(t, service, 0))

	select {
	case record := <-ch:
		if record.Name != "Ana" || record.Status != domain.StatusFailed {
			t.Fatalf("unexpected record: %+v", record)
		}
	default:
		t.Fatalf("expected a published result")
	}
}

type failingResults struct{}

func (failingResults) LoadAll(context.Context) ([]domain.ResultRecord, error) { return nil, nil }
func (failingResults) Append(context.Context, domain.ResultRecord) error {
	return errors.New("disk full")
}

func TestAppendFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	bank, err := memory.NewDefaultBankLoader().LoadBank(ctx)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	service := app.NewQuizService(bank, memory.NewAttemptStore(), failingResults{}, metrics.NewMetrics())
	begin(t, service, "a1", "Ana")

	_, err = service.SubmitAnswer(ctx, "a1", domain.AnswerSubmission{Selected: wrongAnswer(t, service, 0)})
	if err == nil {
		t.Fatalf("expected storage error")
	}
}

func newTestService(t *testing.T) (*app.QuizService, *memory.ResultStore) {
	t.Helper()
	bank, err := memory.NewDefaultBankLoader().LoadBank(context.Background())
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	results := memory.NewResultStore()
	return app.NewQuizService(bank, memory.NewAttemptStore(), results, metrics.NewMetrics()), results
}

func begin(t *testing.T, service *app.QuizService, id, name string) {
	t.Helper()
	if _, err := service.BeginAttempt(context.Background(), id, name); err != nil {
		t.Fatalf("begin attempt: %v", err)
	}
}

func answer(t *testing.T, service *app.QuizService, id string, index, prize, selected int) app.Outcome {
	t.Helper()
	outcome, err := service.SubmitAnswer(context.Background(), id, domain.AnswerSubmission{
		QuestionIndex: index,
		CurrentPrize:  prize,
		Selected:      selected,
	})
	if err != nil {
		t.Fatalf("submit answer %d at question %d: %v", selected, index, err)
	}
	return outcome
}

func correctAnswer(t *testing.T, service *app.QuizService, index int) int {
	t.Helper()
	q, err := service.Bank().Question(index)
	if err != nil {
		t.Fatalf("question %d: %v", index, err)
	}
	return q.Correct
}

func wrongAnswer(t *testing.T, service *app.QuizService, index int) int {
	t.Helper()
	return correctAnswer(t, service, index)%domain.OptionCount + 1
}

func assertLastRecord(t *testing.T, store *memory.ResultStore, want domain.ResultRecord, count int) {
	t.Helper()
	records, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(records) != count {
		t.Fatalf("expected %d records, got %d", count, len(records))
	}
	if records[len(records)-1] != want {
		t.Fatalf("expected last record %+v, got %+v", want, records[len(records)-1])
	}
}
