package insight

import (
	"fmt"
	"math"
	"sort"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
)

// minSampleSize is the vote count below which no insight is produced.
const minSampleSize = 20

// SnapshotOf derives the read model for one poll: total votes plus the
// current insight, both computed from the same in-memory aggregate.
func SnapshotOf(poll entities.Poll) entities.PollSnapshot {
	message, ok := Generate(poll.Options)
	return entities.PollSnapshot{
		Poll:       poll,
		TotalVotes: poll.TotalVotes(),
		Insight:    message,
		HasInsight: ok,
	}
}

// Generate maps current tallies to a human-readable standing summary.
// It is a pure function of the option counts and is recomputed on every read
// and every accepted vote. The boolean is false while the sample is too
// small to say anything useful.
func Generate(options []entities.Option) (string, bool) {
	total := 0
	for _, option := range options {
		total += option.Votes
	}
	if total < minSampleSize {
		return "", false
	}

	ranked := make([]entities.Option, len(options))
	copy(ranked, options)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})

	top := ranked[0]
	second := ranked[1]
	topPct := int(math.Round(float64(top.Votes) / float64(total) * 100))

	if top.Votes == second.Votes {
		return fmt.Sprintf("The vote is currently tied between %q and %q.", top.Text, second.Text), true
	}
	margin := float64(top.Votes-second.Votes) / float64(total)
	if margin > 0.10 {
		return fmt.Sprintf("%q is the clear favorite, securing %d%% of the votes.", top.Text, topPct), true
	}
	return fmt.Sprintf("It's a close race, but %q has a slight edge with %d%%.", top.Text, topPct), true
}
