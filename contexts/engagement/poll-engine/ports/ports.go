package ports

import (
	"context"
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
)

// PollRepository is the narrow store contract for the poll aggregate.
//
// ApplyVote must execute the duplicate-fingerprint guard, the option vote
// increment, and the fingerprint append as one atomic request keyed by poll
// id. A read-then-write split here would let two concurrent voters observe
// the same pre-mutation fingerprint set, so the guard belongs to the store.
type PollRepository interface {
	CreatePoll(ctx context.Context, poll entities.Poll) error
	GetPoll(ctx context.Context, pollID string) (entities.Poll, error)
	ApplyVote(ctx context.Context, pollID string, optionID string, fingerprint string) (entities.Poll, error)
}

// UpdatePublisher fans a post-vote snapshot out to every subscriber of the
// poll's topic. Delivery is fire-and-forget relative to the vote transaction.
type UpdatePublisher interface {
	PublishPollUpdate(ctx context.Context, snapshot entities.PollSnapshot) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
