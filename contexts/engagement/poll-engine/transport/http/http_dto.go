package http

import (
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

type OptionView struct {
	OptionID string `json:"option_id"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
}

// PollSnapshotResponse is the shared post-vote payload: the vote response
// body and the realtime broadcast frame are both produced by
// NewPollSnapshotResponse from the same snapshot.
type PollSnapshotResponse struct {
	PollID     string       `json:"poll_id"`
	Question   string       `json:"question"`
	Options    []OptionView `json:"options"`
	TotalVotes int          `json:"total_votes"`
	Insight    *string      `json:"insight"`
	CreatedAt  time.Time    `json:"created_at"`
	ExpiresAt  time.Time    `json:"expires_at"`
}

type PollDetailResponse struct {
	PollSnapshotResponse
	UserVote *string `json:"user_vote"`
}

func NewPollSnapshotResponse(snapshot entities.PollSnapshot) PollSnapshotResponse {
	options := make([]OptionView, 0, len(snapshot.Poll.Options))
	for _, option := range snapshot.Poll.Options {
		options = append(options, OptionView{
			OptionID: option.OptionID,
			Text:     option.Text,
			Votes:    option.Votes,
		})
	}
	resp := PollSnapshotResponse{
		PollID:     snapshot.Poll.PollID,
		Question:   snapshot.Poll.Question,
		Options:    options,
		TotalVotes: snapshot.TotalVotes,
		CreatedAt:  snapshot.Poll.CreatedAt,
		ExpiresAt:  snapshot.Poll.ExpiresAt,
	}
	if snapshot.HasInsight {
		message := snapshot.Insight
		resp.Insight = &message
	}
	return resp
}
