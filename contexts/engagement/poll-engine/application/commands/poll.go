package commands

import (
	"context"
	"log/slog"
	"strings"

	application "livepoll/contexts/engagement/poll-engine/application"
	"livepoll/contexts/engagement/poll-engine/domain/entities"
	domainerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	"livepoll/contexts/engagement/poll-engine/ports"
)

// CreatePollCommand is the write-model input for poll creation.
type CreatePollCommand struct {
	Question string
	Options  []string
}

type CreatePollResult struct {
	Poll entities.Poll
}

// PollUseCase orchestrates poll lifecycle commands: option count bounds,
// zeroed tallies, and the fixed 24-hour voting window.
type PollUseCase struct {
	Polls  ports.PollRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc PollUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (CreatePollResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	question := strings.TrimSpace(cmd.Question)
	optionTexts := make([]string, 0, len(cmd.Options))
	for _, text := range cmd.Options {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			optionTexts = append(optionTexts, trimmed)
		}
	}
	if question == "" || len(optionTexts) < entities.MinOptions || len(optionTexts) > entities.MaxOptions {
		logger.Warn("poll create validation failed",
			"event", "poll_create_validation_failed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"option_count", len(optionTexts),
		)
		return CreatePollResult{}, domainerrors.ErrInvalidPollInput
	}

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreatePollResult{}, err
	}
	now := uc.Clock.Now().UTC()
	poll := entities.Poll{
		PollID:    pollID,
		Question:  question,
		CreatedAt: now,
		ExpiresAt: now.Add(entities.VotingWindow),
	}
	for _, text := range optionTexts {
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return CreatePollResult{}, err
		}
		poll.Options = append(poll.Options, entities.Option{
			OptionID: optionID,
			Text:     text,
			Votes:    0,
		})
	}

	if err := uc.Polls.CreatePoll(ctx, poll); err != nil {
		logger.Error("poll create persist failed",
			"event", "poll_create_persist_failed",
			"module", "engagement/poll-engine",
			"layer", "application",
			"poll_id", poll.PollID,
			"error", err.Error(),
		)
		return CreatePollResult{}, err
	}

	logger.Info("poll created",
		"event", "poll_created",
		"module", "engagement/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"option_count", len(poll.Options),
		"expires_at", poll.ExpiresAt,
	)
	return CreatePollResult{Poll: poll}, nil
}
