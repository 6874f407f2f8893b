package session

import "lootroll/internal/models"

type GetActiveSessionInput struct {
	GuildID string
}

type SaveActiveSessionInput struct {
	Session *models.RollSession
}

type ClearActiveSessionInput struct {
	GuildID string
}
