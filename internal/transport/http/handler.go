package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"millionaire-quiz/internal/app"
	"millionaire-quiz/internal/domain"
)

const (
	sessionName = "quiz-session"
	attemptKey  = "attempt_id"

	msgEnterName    = "Please enter your name."
	msgChooseAnswer = "Please choose one of the four answers."
	msgFinished     = "Congratulations! You finished the quiz! 🎉"
	msgFailed       = "Wrong answer! Game Over ❌"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the browser pages and the JSON results list.
type Handler struct {
	service   *app.QuizService
	sessions  sessions.Store
	templates map[string]*template.Template
}

type indexPage struct {
	Name  string
	Error string
}

type quizPage struct {
	app.QuestionView
	Error string
}

type resultPage struct {
	Name    string
	Message string
	Amount  int
}

func NewHandler(service *app.QuizService, store sessions.Store) *Handler {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
	}
	templates := make(map[string]*template.Template)
	for _, name := range []string{"index", "quiz", "result"} {
		templates[name] = template.Must(template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html"))
	}
	return &Handler{
		service:   service,
		sessions:  store,
		templates: templates,
	}
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index", indexPage{})
}

func (h *Handler) handleBegin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	session, attemptID := h.session(r)
	if attemptID == "" {
		attemptID = uuid.NewString()
	}

	_, err := h.service.BeginAttempt(r.Context(), attemptID, r.FormValue("name"))
	if errors.Is(err, domain.ErrInvalidInput) {
		h.render(w, http.StatusOK, "index", indexPage{Error: msgEnterName})
		return
	}
	if err != nil {
		log.Printf("begin attempt failed: %v", err)
		http.Error(w, "Failed to start quiz", http.StatusInternalServerError)
		return
	}

	session.Values[attemptKey] = attemptID
	if err := session.Save(r, w); err != nil {
		log.Printf("session save error: %v", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	_, attemptID := h.session(r)

	view, err := h.service.StartQuiz(r.Context(), attemptID)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("start quiz failed: %v", err)
		http.Error(w, "Failed to start quiz", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "quiz", quizPage{QuestionView: view})
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	_, attemptID := h.session(r)

	submission := domain.AnswerSubmission{
		QuestionIndex: formInt(r, "q_index", -1),
		CurrentPrize:  formInt(r, "current_prize", -1),
		Selected:      formInt(r, "answer", 0),
	}
	outcome, err := h.service.SubmitAnswer(r.Context(), attemptID, submission)
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		view, viewErr := h.service.CurrentQuestion(r.Context(), attemptID)
		if viewErr != nil {
			log.Printf("current question failed: %v", viewErr)
			http.Error(w, "Failed to load question", http.StatusInternalServerError)
			return
		}
		h.render(w, http.StatusOK, "quiz", quizPage{QuestionView: view, Error: msgChooseAnswer})
		return
	case errors.Is(err, domain.ErrInvalidState):
		http.Error(w, "This question is no longer open. Start again from /quiz.", http.StatusConflict)
		return
	case err != nil:
		log.Printf("submit answer failed: %v", err)
		http.Error(w, "Failed to record answer", http.StatusInternalServerError)
		return
	}

	if outcome.Result != nil {
		message := msgFailed
		if outcome.Result.Status == domain.StatusFinished {
			message = msgFinished
		}
		h.render(w, http.StatusOK, "result", resultPage{
			Name:    outcome.Result.Name,
			Message: message,
			Amount:  outcome.Result.Amount,
		})
		return
	}
	h.render(w, http.StatusOK, "quiz", quizPage{QuestionView: *outcome.Question})
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Results(r.Context())
	if err != nil {
		log.Printf("load results failed: %v", err)
		http.Error(w, "Failed to load results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Metrics().GetSnapshot())
}

// session returns the cookie session and the attempt ID it carries, if any.
// A cookie that fails to decode yields a fresh session.
func (h *Handler) session(r *http.Request) (*sessions.Session, string) {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		log.Printf("session decode error: %v", err)
	}
	attemptID, _ := session.Values[attemptKey].(string)
	return session, attemptID
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates[name].ExecuteTemplate(&buf, "base.html", data); err != nil {
		log.Printf("template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json failed: %v", err)
	}
}
