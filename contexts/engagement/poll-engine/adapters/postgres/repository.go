package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
	domainerrors "livepoll/contexts/engagement/poll-engine/domain/errors"
	"livepoll/contexts/engagement/poll-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the poll tables when they do not exist yet. The service
// owns its schema, so bootstrap runs this once at startup.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&pollModel{}, &pollOptionModel{}, &voterFingerprintModel{})
}

func (r *Repository) CreatePoll(ctx context.Context, poll entities.Poll) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := pollModelFromEntity(poll)
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("poll_repo_create_poll_failed", err, "poll_id", row.ID)
		}
		for position, option := range poll.Options {
			optionRow := pollOptionModel{
				ID:       strings.TrimSpace(option.OptionID),
				PollID:   row.ID,
				Position: position,
				Text:     option.Text,
				Votes:    option.Votes,
			}
			if err := tx.Create(&optionRow).Error; err != nil {
				return r.logError("poll_repo_create_option_failed", err,
					"poll_id", row.ID,
					"option_id", optionRow.ID,
				)
			}
		}
		return nil
	})
}

func (r *Repository) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	pollID = strings.TrimSpace(pollID)

	var row pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", pollID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_poll_failed", err, "poll_id", pollID)
	}

	var optionRows []pollOptionModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Find(&optionRows).Error; err != nil {
		return entities.Poll{}, r.logError("poll_repo_get_options_failed", err, "poll_id", pollID)
	}

	var fingerprintRows []voterFingerprintModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Find(&fingerprintRows).Error; err != nil {
		return entities.Poll{}, r.logError("poll_repo_get_fingerprints_failed", err, "poll_id", pollID)
	}

	return toPollEntity(row, optionRows, fingerprintRows), nil
}

// ApplyVote runs the duplicate guard and the tally mutation as one
// transaction keyed by poll id: the fingerprint insert hits the composite
// primary key, so two concurrent attempts with the same fingerprint can
// never both pass, and the vote increment happens in SQL rather than on a
// value read earlier.
func (r *Repository) ApplyVote(ctx context.Context, pollID string, optionID string, fingerprint string) (entities.Poll, error) {
	pollID = strings.TrimSpace(pollID)
	optionID = strings.TrimSpace(optionID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fingerprintRow := voterFingerprintModel{
			PollID:      pollID,
			Fingerprint: fingerprint,
			CreatedAt:   time.Now().UTC(),
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poll_id"}, {Name: "fingerprint"}},
			DoNothing: true,
		}).Create(&fingerprintRow)
		if insert.Error != nil {
			if isUniqueViolation(insert.Error) {
				return domainerrors.ErrDuplicateVote
			}
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			return domainerrors.ErrDuplicateVote
		}

		update := tx.Model(&pollOptionModel{}).
			Where("id = ? AND poll_id = ?", optionID, pollID).
			UpdateColumn("votes", gorm.Expr("votes + 1"))
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			// Rolls the fingerprint insert back with the transaction.
			return domainerrors.ErrInvalidOption
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateVote) || errors.Is(err, domainerrors.ErrInvalidOption) {
			return entities.Poll{}, err
		}
		return entities.Poll{}, r.logError("poll_repo_apply_vote_failed", err,
			"poll_id", pollID,
			"option_id", optionID,
		)
	}

	return r.GetPoll(ctx, pollID)
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "engagement/poll-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

type pollModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Question  string    `gorm:"column:question"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (pollModel) TableName() string {
	return "polls"
}

type pollOptionModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	PollID   string `gorm:"column:poll_id;index"`
	Position int    `gorm:"column:position"`
	Text     string `gorm:"column:text"`
	Votes    int    `gorm:"column:votes"`
}

func (pollOptionModel) TableName() string {
	return "poll_options"
}

type voterFingerprintModel struct {
	PollID      string    `gorm:"column:poll_id;primaryKey"`
	Fingerprint string    `gorm:"column:fingerprint;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (voterFingerprintModel) TableName() string {
	return "poll_voter_fingerprints"
}

func pollModelFromEntity(poll entities.Poll) pollModel {
	return pollModel{
		ID:        strings.TrimSpace(poll.PollID),
		Question:  poll.Question,
		CreatedAt: poll.CreatedAt.UTC(),
		ExpiresAt: poll.ExpiresAt.UTC(),
	}
}

func toPollEntity(row pollModel, optionRows []pollOptionModel, fingerprintRows []voterFingerprintModel) entities.Poll {
	poll := entities.Poll{
		PollID:    row.ID,
		Question:  row.Question,
		CreatedAt: row.CreatedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
	}
	for _, optionRow := range optionRows {
		poll.Options = append(poll.Options, entities.Option{
			OptionID: optionRow.ID,
			Text:     optionRow.Text,
			Votes:    optionRow.Votes,
		})
	}
	for _, fingerprintRow := range fingerprintRows {
		poll.VoterFingerprints = append(poll.VoterFingerprints, fingerprintRow.Fingerprint)
	}
	return poll
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PollRepository = (*Repository)(nil)
