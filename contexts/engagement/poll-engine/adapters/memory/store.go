package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
	domainerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	"livepoll/contexts/engagement/poll-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory PollRepository used by tests and DSN-less local
// runs. The single mutex makes ApplyVote's check-and-mutate atomic, matching
// the contract the postgres adapter honors with a transaction.
type Store struct {
	mu    sync.RWMutex
	polls map[string]entities.Poll
}

func NewStore(seed []entities.Poll) *Store {
	polls := make(map[string]entities.Poll, len(seed))
	for _, poll := range seed {
		polls[poll.PollID] = clonePoll(poll)
	}
	return &Store{polls: polls}
}

func (s *Store) CreatePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[strings.TrimSpace(poll.PollID)] = clonePoll(poll)
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) ApplyVote(_ context.Context, pollID string, optionID string, fingerprint string) (entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	if poll.HasFingerprint(fingerprint) {
		return entities.Poll{}, domainerrors.ErrDuplicateVote
	}

	matched := -1
	for i := range poll.Options {
		if poll.Options[i].OptionID == optionID {
			matched = i
			break
		}
	}
	if matched < 0 {
		return entities.Poll{}, domainerrors.ErrInvalidOption
	}

	poll.Options[matched].Votes++
	poll.VoterFingerprints = append(poll.VoterFingerprints, fingerprint)
	s.polls[poll.PollID] = poll
	return clonePoll(poll), nil
}

// The store doubles as Clock and IDGenerator for in-memory wiring.

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func clonePoll(poll entities.Poll) entities.Poll {
	cloned := poll
	cloned.Options = append([]entities.Option(nil), poll.Options...)
	cloned.VoterFingerprints = append([]string(nil), poll.VoterFingerprints...)
	return cloned
}

var _ ports.PollRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
