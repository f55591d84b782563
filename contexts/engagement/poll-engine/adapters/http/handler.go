package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "livepoll/contexts/engagement/poll-engine/application"
	"livepoll/contexts/engagement/poll-engine/application/commands"
	"livepoll/contexts/engagement/poll-engine/application/queries"
	httptransport "livepoll/contexts/engagement/poll-engine/transport/http"
)

// Handler is the framework-free adapter between transport DTOs and use
// cases. Cookie and header mechanics stay in the platform HTTP server; this
// layer only sees the extracted values.
type Handler struct {
	Polls   commands.PollUseCase
	Votes   commands.VoteUseCase
	Queries queries.PollQueryUseCase
	Logger  *slog.Logger
}

// CreatePollHandler godoc
// @Summary Create a poll
// @Description Creates a poll with 2-4 fixed options and a 24-hour voting window.
// @Tags poll-engine
// @Accept json
// @Produce json
// @Param request body httptransport.CreatePollRequest true "Question and option texts"
// @Success 201 {object} httptransport.CreatePollResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/polls [post]
func (h Handler) CreatePollHandler(ctx context.Context, req httptransport.CreatePollRequest) (httptransport.CreatePollResponse, error) {
	result, err := h.Polls.CreatePoll(ctx, commands.CreatePollCommand{
		Question: req.Question,
		Options:  req.Options,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("poll http create failed",
			"event", "poll_http_create_failed",
			"module", "engagement/poll-engine",
			"layer", "adapter",
			"error", err.Error(),
		)
		return httptransport.CreatePollResponse{}, err
	}
	return httptransport.CreatePollResponse{PollID: result.Poll.PollID}, nil
}

// GetPollHandler godoc
// @Summary Get a poll
// @Description Returns the poll with total votes, current insight, and the caller's prior vote when the token cookie verifies.
// @Tags poll-engine
// @Produce json
// @Param poll_id path string true "Poll id"
// @Success 200 {object} httptransport.PollDetailResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/polls/{poll_id} [get]
func (h Handler) GetPollHandler(ctx context.Context, pollID string, priorToken string) (httptransport.PollDetailResponse, error) {
	view, err := h.Queries.GetPoll(ctx, pollID, priorToken)
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("poll http get failed",
			"event", "poll_http_get_failed",
			"module", "engagement/poll-engine",
			"layer", "adapter",
			"poll_id", pollID,
			"error", err.Error(),
		)
		return httptransport.PollDetailResponse{}, err
	}
	resp := httptransport.PollDetailResponse{
		PollSnapshotResponse: httptransport.NewPollSnapshotResponse(view.Snapshot),
	}
	if view.HasVoted {
		optionID := view.UserVote
		resp.UserVote = &optionID
	}
	return resp, nil
}

// VoteOutcome couples the response body with the credential the platform
// layer turns into a cookie.
type VoteOutcome struct {
	Response       httptransport.PollSnapshotResponse
	Token          string
	TokenExpiresAt time.Time
}

// CastVoteHandler godoc
// @Summary Cast a vote
// @Description Records one vote per distinct voter; on success the response body matches the realtime broadcast frame.
// @Tags poll-engine
// @Accept json
// @Produce json
// @Param poll_id path string true "Poll id"
// @Param request body httptransport.CastVoteRequest true "Option id"
// @Success 200 {object} httptransport.PollSnapshotResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/polls/{poll_id}/vote [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	pollID string,
	priorToken string,
	ipAddress string,
	userAgent string,
	req httptransport.CastVoteRequest,
) (VoteOutcome, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		PollID:     pollID,
		OptionID:   req.OptionID,
		PriorToken: priorToken,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("poll http vote failed",
			"event", "poll_http_vote_failed",
			"module", "engagement/poll-engine",
			"layer", "adapter",
			"poll_id", pollID,
			"option_id", req.OptionID,
			"error", err.Error(),
		)
		return VoteOutcome{}, err
	}
	return VoteOutcome{
		Response:       httptransport.NewPollSnapshotResponse(result.Snapshot),
		Token:          result.Token,
		TokenExpiresAt: result.Snapshot.Poll.ExpiresAt,
	}, nil
}
