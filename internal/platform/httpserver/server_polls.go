package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	pollerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	pollhttp "livepoll/contexts/engagement/poll-engine/transport/http"
)

const voteCookiePrefix = "poll_vote_"

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{Code: code, Message: message})
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidPollInput):
		writePollError(w, http.StatusBadRequest, "invalid_poll_input", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPollExpired):
		writePollError(w, http.StatusBadRequest, "poll_expired", err.Error())
	case errors.Is(err, pollerrors.ErrDuplicateVote):
		writePollError(w, http.StatusForbidden, "duplicate_vote", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidOption):
		writePollError(w, http.StatusBadRequest, "invalid_option", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func voteCookieName(pollID string) string {
	return voteCookiePrefix + pollID
}

func (s *Server) readVoteToken(r *http.Request, pollID string) string {
	cookie, err := r.Cookie(voteCookieName(pollID))
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setVoteCookie(w http.ResponseWriter, pollID string, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     voteCookieName(pollID),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// handleCreatePoll creates a poll.
func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleGetPoll returns a poll with totals, insight, and the caller's prior
// vote when a valid token cookie is present.
func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := strings.TrimSpace(r.PathValue("poll_id"))
	if pollID == "" {
		writePollError(w, http.StatusBadRequest, "invalid_request", "poll_id is required")
		return
	}

	resp, err := s.polls.Handler.GetPollHandler(r.Context(), pollID, s.readVoteToken(r, pollID))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCastVote records one vote and sets the poll-scoped token cookie on
// success. The response body is the same snapshot broadcast to subscribers.
func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	pollID := strings.TrimSpace(r.PathValue("poll_id"))
	if pollID == "" {
		writePollError(w, http.StatusBadRequest, "invalid_request", "poll_id is required")
		return
	}

	var req pollhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	outcome, err := s.polls.Handler.CastVoteHandler(
		r.Context(),
		pollID,
		s.readVoteToken(r, pollID),
		resolveClientIP(r),
		r.UserAgent(),
		req,
	)
	if err != nil {
		writePollDomainError(w, err)
		return
	}

	s.setVoteCookie(w, pollID, outcome.Token, outcome.TokenExpiresAt)
	writeJSON(w, http.StatusOK, outcome.Response)
}

// handlePollLive upgrades to a websocket subscribed to the poll's updates.
func (s *Server) handlePollLive(w http.ResponseWriter, r *http.Request) {
	pollID := strings.TrimSpace(r.PathValue("poll_id"))
	if pollID == "" {
		writePollError(w, http.StatusBadRequest, "invalid_request", "poll_id is required")
		return
	}
	if _, err := s.polls.Handler.GetPollHandler(r.Context(), pollID, ""); err != nil {
		writePollDomainError(w, err)
		return
	}
	s.hub.ServeWS(w, r, pollID)
}
