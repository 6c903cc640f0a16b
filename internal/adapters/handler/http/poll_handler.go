package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type PollHandler struct {
	polls   ports.PollService
	ballots ports.BallotService
}

func NewPollHandler(polls ports.PollService, ballots ports.BallotService) *PollHandler {
	return &PollHandler{
		polls:   polls,
		ballots: ballots,
	}
}

type createPollRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Options       []string   `json:"options"`
	AllowMultiple bool       `json:"allow_multiple"`
	MaxSelections int        `json:"max_selections"`
	Anonymous     bool       `json:"is_anonymous"`
	ClosesAt      *time.Time `json:"closes_at"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	poll, err := h.polls.Create(r.Context(), ports.CreatePollInput{
		Title:         req.Title,
		Description:   req.Description,
		Options:       req.Options,
		AllowMultiple: req.AllowMultiple,
		MaxSelections: req.MaxSelections,
		Anonymous:     req.Anonymous,
		ClosesAt:      req.ClosesAt,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, polls)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.ballots.Results(r.Context(), pollID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func pollIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidPollID
	}
	return id, nil
}
