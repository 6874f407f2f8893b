package history

import (
	"time"

	"lootroll/internal/models"
)

type AppendRecordInput struct {
	Record *models.RollRecord
}

type ListRecordsInput struct {
	GuildID string
}

type ListRecordsOutput struct {
	Records []*models.RollRecord
}

type HasRecordInput struct {
	GuildID string
	Item    string
	EndTime time.Time
}
