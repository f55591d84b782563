package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "livepoll/contexts/engagement/poll-engine/application"
	"livepoll/contexts/engagement/poll-engine/domain/entities"
	domainerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	"livepoll/contexts/engagement/poll-engine/domain/identity"
	"livepoll/contexts/engagement/poll-engine/domain/insight"
	"livepoll/contexts/engagement/poll-engine/ports"
)

// CastVoteCommand is the write-model input for one vote attempt. PriorToken
// is the raw cookie value as received; verification happens inside the use
// case so a tampered token degrades instead of erroring.
type CastVoteCommand struct {
	PollID     string
	OptionID   string
	PriorToken string
	IPAddress  string
	UserAgent  string
}

// CastVoteResult carries the post-persist snapshot and the fresh credential.
// The same snapshot value is handed to the publisher, so the caller response
// and the broadcast can never disagree.
type CastVoteResult struct {
	Snapshot entities.PollSnapshot
	Token    string
}

// VoteUseCase coordinates the vote transaction: resolve identity, load the
// poll, validate, apply the atomic mutation, issue the token, broadcast.
// Rejections perform no mutation, no token issuance, and no broadcast.
type VoteUseCase struct {
	Polls     ports.PollRepository
	Publisher ports.UpdatePublisher
	Clock     ports.Clock
	Tokens    identity.TokenCodec
	Logger    *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID := strings.TrimSpace(cmd.PollID)
	optionID := strings.TrimSpace(cmd.OptionID)
	if pollID == "" || optionID == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidOption
	}

	attempt := identity.ResolveAttempt(uc.Tokens, cmd.PriorToken, cmd.IPAddress, cmd.UserAgent, pollID)

	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return CastVoteResult{}, err
	}

	now := uc.Clock.Now().UTC()
	if poll.Expired(now) {
		logger.Info("vote rejected on expired poll",
			"event", "vote_rejected_expired",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", pollID,
		)
		return CastVoteResult{}, domainerrors.ErrPollExpired
	}
	// Any valid prior token for this poll counts as "already voted",
	// regardless of which option it names.
	if attempt.HasPrior {
		logger.Info("vote rejected by prior token",
			"event", "vote_rejected_token",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", pollID,
		)
		return CastVoteResult{}, domainerrors.ErrDuplicateVote
	}
	if poll.HasFingerprint(attempt.Fingerprint) {
		logger.Info("vote rejected by fingerprint",
			"event", "vote_rejected_fingerprint",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", pollID,
		)
		return CastVoteResult{}, domainerrors.ErrDuplicateVote
	}
	if _, ok := poll.FindOption(optionID); !ok {
		return CastVoteResult{}, domainerrors.ErrInvalidOption
	}

	// The store re-runs the fingerprint and option guards under its own
	// atomicity; the checks above only produce early, specific rejections.
	updated, err := uc.Polls.ApplyVote(ctx, pollID, optionID, attempt.Fingerprint)
	if err != nil {
		if isBusinessRejection(err) {
			return CastVoteResult{}, err
		}
		logger.Error("vote apply failed",
			"event", "vote_apply_failed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", pollID,
			"option_id", optionID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	token, err := uc.Tokens.Issue(pollID, optionID, now, updated.ExpiresAt)
	if err != nil {
		logger.Error("vote token issue failed",
			"event", "vote_token_issue_failed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", pollID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	snapshot := insight.SnapshotOf(updated)
	if uc.Publisher != nil {
		// Subscriber delivery is fire-and-forget: a broadcast fault must
		// never fail an already-persisted vote.
		if err := uc.Publisher.PublishPollUpdate(ctx, snapshot); err != nil {
			logger.Warn("poll update broadcast failed",
				"event", "vote_broadcast_failed",
				"module", "engagement/poll-engine",
				"layer", "application",
				"poll_id", pollID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("vote recorded",
		"event", "vote_recorded",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", pollID,
		"option_id", optionID,
		"total_votes", snapshot.TotalVotes,
	)
	return CastVoteResult{Snapshot: snapshot, Token: token}, nil
}

func isBusinessRejection(err error) bool {
	return errors.Is(err, domainerrors.ErrPollNotFound) ||
		errors.Is(err, domainerrors.ErrPollExpired) ||
		errors.Is(err, domainerrors.ErrDuplicateVote) ||
		errors.Is(err, domainerrors.ErrInvalidOption)
}
