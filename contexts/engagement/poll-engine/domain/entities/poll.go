package entities

import "time"

const (
	MinOptions = 2
	MaxOptions = 4

	// VotingWindow is the fixed lifetime of every poll.
	VotingWindow = 24 * time.Hour
)

type Option struct {
	OptionID string
	Text     string
	Votes    int
}

// Poll is the unit of consistency: options and the recorded fingerprint set
// are only ever mutated together through a single repository call.
type Poll struct {
	PollID            string
	Question          string
	Options           []Option
	VoterFingerprints []string
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

func (p Poll) TotalVotes() int {
	total := 0
	for _, option := range p.Options {
		total += option.Votes
	}
	return total
}

func (p Poll) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

func (p Poll) FindOption(optionID string) (Option, bool) {
	for _, option := range p.Options {
		if option.OptionID == optionID {
			return option, true
		}
	}
	return Option{}, false
}

func (p Poll) HasFingerprint(fingerprint string) bool {
	for _, recorded := range p.VoterFingerprints {
		if recorded == fingerprint {
			return true
		}
	}
	return false
}

// PollSnapshot is the post-mutation read model shared by the vote response
// and the realtime broadcast so the two can never drift.
type PollSnapshot struct {
	Poll       Poll
	TotalVotes int
	Insight    string
	HasInsight bool
}
