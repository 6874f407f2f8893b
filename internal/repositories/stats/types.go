package stats

import "lootroll/internal/models"

type GetStatsInput struct {
	GuildID     string
	Participant string
}

type SaveStatsInput struct {
	Stats *models.ParticipantStats
}

type ListStatsInput struct {
	GuildID string
}

type ListStatsOutput struct {
	Stats []*models.ParticipantStats
}
