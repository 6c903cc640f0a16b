package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type BallotHandler struct {
	service ports.BallotService
	now     func() time.Time
}

func NewBallotHandler(service ports.BallotService) *BallotHandler {
	return &BallotHandler{
		service: service,
		now:     time.Now,
	}
}

type submitBallotRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type ballotView struct {
	Poll      *domain.Poll       `json:"poll"`
	State     domain.BallotState `json:"state"`
	Selection domain.Selection   `json:"selection"`
	Response  *domain.Response   `json:"response,omitempty"`
	Results   *domain.Results    `json:"results,omitempty"`
}

// GetBallot shows the customer's stored answer and, once answered, the
// current results.
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	custID, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ballot, err := h.service.OpenBallot(r.Context(), pollID, custID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.view(r, ballot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitBallot records the customer's full selection, creating the response
// on first answer and replacing it afterwards.
func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	custID, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req submitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ballot, err := h.service.OpenBallot(r.Context(), pollID, custID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ballot.Poll().IsOpen(h.now()) {
		writeError(w, r, domain.ErrPollClosed)
		return
	}

	created := !ballot.Answered()
	if !created {
		if err := ballot.Edit(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if err := ballot.Choose(domain.Selection(req.OptionIDs)); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.service.SubmitBallot(r.Context(), ballot, custID); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.view(r, ballot)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, view)
}

func (h *BallotHandler) view(r *http.Request, ballot *domain.Ballot) (*ballotView, error) {
	view := &ballotView{
		Poll:      ballot.Poll(),
		State:     ballot.State(),
		Selection: ballot.Selection(),
		Response:  ballot.Persisted(),
	}
	if ballot.Answered() {
		results, err := h.service.Results(r.Context(), ballot.Poll().ID)
		if err != nil {
			return nil, err
		}
		view.Results = results
	}
	return view, nil
}
