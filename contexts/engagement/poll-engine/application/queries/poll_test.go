package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"livepoll/contexts/engagement/poll-engine/adapters/memory"
	"livepoll/contexts/engagement/poll-engine/domain/entities"
	domainerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	"livepoll/contexts/engagement/poll-engine/domain/identity"
)

func seedPoll(votes ...int) entities.Poll {
	now := time.Now().UTC()
	poll := entities.Poll{
		PollID:    "poll-1",
		Question:  "Favourite drink?",
		CreatedAt: now,
		ExpiresAt: now.Add(entities.VotingWindow),
	}
	names := []string{"Coffee", "Tea", "Juice", "Water"}
	for i, count := range votes {
		poll.Options = append(poll.Options, entities.Option{
			OptionID: names[i],
			Text:     names[i],
			Votes:    count,
		})
	}
	return poll
}

func TestGetPollReturnsTotalsAndInsight(t *testing.T) {
	store := memory.NewStore([]entities.Poll{seedPoll(12, 8)})
	uc := PollQueryUseCase{
		Polls:  store,
		Tokens: identity.TokenCodec{Secret: []byte("unit-test-secret")},
	}

	view, err := uc.GetPoll(context.Background(), "poll-1", "")
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if view.Snapshot.TotalVotes != 20 {
		t.Fatalf("expected 20 total votes, got %d", view.Snapshot.TotalVotes)
	}
	if !view.Snapshot.HasInsight {
		t.Fatal("expected an insight at 20 votes")
	}
	if view.HasVoted {
		t.Fatal("no token means no prior vote")
	}
}

func TestGetPollExposesPriorVoteFromToken(t *testing.T) {
	codec := identity.TokenCodec{Secret: []byte("unit-test-secret")}
	store := memory.NewStore([]entities.Poll{seedPoll(1, 0)})
	uc := PollQueryUseCase{Polls: store, Tokens: codec}

	now := time.Now().UTC()
	token, err := codec.Issue("poll-1", "Coffee", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	view, err := uc.GetPoll(context.Background(), "poll-1", token)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if !view.HasVoted || view.UserVote != "Coffee" {
		t.Fatalf("expected prior vote Coffee, got %+v", view)
	}

	// A token for a different poll must not leak across.
	foreign, err := codec.Issue("poll-2", "Coffee", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	view, err = uc.GetPoll(context.Background(), "poll-1", foreign)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if view.HasVoted {
		t.Fatal("a foreign poll token must not count as a prior vote")
	}
}

func TestGetPollUnknownID(t *testing.T) {
	uc := PollQueryUseCase{
		Polls:  memory.NewStore(nil),
		Tokens: identity.TokenCodec{Secret: []byte("unit-test-secret")},
	}
	_, err := uc.GetPoll(context.Background(), "missing", "")
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}
