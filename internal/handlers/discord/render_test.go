package discord

import (
	"testing"

	"lootroll/internal/models"
	queryService "lootroll/internal/services/query"

	"github.com/stretchr/testify/assert"
)

func TestDisplayParticipant(t *testing.T) {
	tests := []struct {
		name        string
		participant string
		want        string
	}{
		{name: "user ID becomes a mention", participant: "200000000000000001", want: "<@200000000000000001>"},
		{name: "character name passes through", participant: "Thrall", want: "Thrall"},
		{name: "mixed name passes through", participant: "Thrall99", want: "Thrall99"},
		{name: "empty stays empty", participant: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayParticipant(tt.participant))
		})
	}
}

func TestRenderLeaderboardMentionsParticipants(t *testing.T) {
	embed := renderLeaderboard([]*queryService.LeaderboardEntry{
		{Participant: "200000000000000001", Priority: 75, Wins: 3, AttendanceRate: 100},
	})

	assert.Contains(t, embed.Description, "<@200000000000000001>")
}

func TestRenderHistoryMentionsWinner(t *testing.T) {
	embed := renderHistory([]*models.RollRecord{
		{Item: "Ashbringer", Winner: "200000000000000001", WinningValue: 98},
	})

	assert.Contains(t, embed.Description, "<@200000000000000001>")
}
