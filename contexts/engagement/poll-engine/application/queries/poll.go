package queries

import (
	"context"
	"strings"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
	"livepoll/contexts/engagement/poll-engine/domain/identity"
	"livepoll/contexts/engagement/poll-engine/domain/insight"
	"livepoll/contexts/engagement/poll-engine/ports"
)

// PollView is the read model for one poll: the snapshot plus, when the
// caller presents a valid token for this poll, the option that token attests
// to.
type PollView struct {
	Snapshot entities.PollSnapshot
	UserVote string
	HasVoted bool
}

type PollQueryUseCase struct {
	Polls  ports.PollRepository
	Tokens identity.TokenCodec
}

func (uc PollQueryUseCase) GetPoll(ctx context.Context, pollID string, priorToken string) (PollView, error) {
	pollID = strings.TrimSpace(pollID)
	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return PollView{}, err
	}

	view := PollView{Snapshot: insight.SnapshotOf(poll)}
	if optionID, ok := uc.Tokens.Verify(priorToken, pollID); ok {
		view.UserVote = optionID
		view.HasVoted = true
	}
	return view, nil
}
