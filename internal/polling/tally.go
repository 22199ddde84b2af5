// Package polling builds the read-time vote projection for polls.
// Counts are never stored; they are recomputed from the vote rows on
// every list request.
package polling

import "nestify/internal/model"

// Result is the per-poll tally reported to the requesting user.
type Result struct {
	VoteCounts []int
	TotalVotes int
	// UserVoted is the requesting user's chosen option index, nil when
	// they have not voted.
	UserVoted *int
}

// Tally counts votes per option. The count vector is sized to the
// option list; a vote referencing an out-of-range index is skipped
// rather than treated as an error, but still counts toward the total.
func Tally(options []string, votes []model.Vote, userID uint) Result {
	counts := make([]int, len(options))
	var userVoted *int
	for i := range votes {
		v := &votes[i]
		if v.OptionIndex >= 0 && v.OptionIndex < len(counts) {
			counts[v.OptionIndex]++
		}
		if v.UserID == userID {
			idx := v.OptionIndex
			userVoted = &idx
		}
	}
	return Result{
		VoteCounts: counts,
		TotalVotes: len(votes),
		UserVoted:  userVoted,
	}
}
