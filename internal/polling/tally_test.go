package polling

import (
	"testing"

	"nestify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCountsPerOption(t *testing.T) {
	options := []string{"Yes", "No", "Abstain"}
	votes := []model.Vote{
		{UserID: 1, OptionIndex: 0},
		{UserID: 2, OptionIndex: 0},
		{UserID: 3, OptionIndex: 1},
	}

	result := Tally(options, votes, 3)

	assert.Equal(t, []int{2, 1, 0}, result.VoteCounts)
	assert.Equal(t, 3, result.TotalVotes)
	require.NotNil(t, result.UserVoted)
	assert.Equal(t, 1, *result.UserVoted)
}

func TestTallyNoVotes(t *testing.T) {
	result := Tally([]string{"A", "B"}, nil, 7)

	assert.Equal(t, []int{0, 0}, result.VoteCounts)
	assert.Equal(t, 0, result.TotalVotes)
	assert.Nil(t, result.UserVoted)
}

func TestTallyUserWithoutVote(t *testing.T) {
	votes := []model.Vote{{UserID: 1, OptionIndex: 0}}

	result := Tally([]string{"A", "B"}, votes, 99)

	assert.Nil(t, result.UserVoted)
	assert.Equal(t, []int{1, 0}, result.VoteCounts)
}

func TestTallyOutOfRangeVoteSkippedButTotaled(t *testing.T) {
	// A poll edited after votes were cast can leave stale indexes
	// behind. They drop out of the per-option counts but still show in
	// the total.
	votes := []model.Vote{
		{UserID: 1, OptionIndex: 0},
		{UserID: 2, OptionIndex: 5},
		{UserID: 3, OptionIndex: -1},
	}

	result := Tally([]string{"A", "B"}, votes, 2)

	assert.Equal(t, []int{1, 0}, result.VoteCounts)
	assert.Equal(t, 3, result.TotalVotes)
	require.NotNil(t, result.UserVoted)
	assert.Equal(t, 5, *result.UserVoted)
}
