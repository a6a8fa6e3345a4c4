package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the page, JSON and websocket endpoints.
func NewRouter(h *Handler, ws *WSHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/", h.handleBegin).Methods(http.MethodPost)
	r.HandleFunc("/quiz", h.handleQuiz).Methods(http.MethodGet)
	r.HandleFunc("/quiz", h.handleAnswer).Methods(http.MethodPost)
	r.HandleFunc("/results", h.handleResults).Methods(http.MethodGet)
	r.HandleFunc("/metrics", h.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/ws/results", ws.ServeWS)
	return r
}
