package attendance

import (
	"time"

	"lootroll/internal/models"
)

type GetActiveEventInput struct {
	GuildID string
}

type SaveActiveEventInput struct {
	Event *models.AttendanceEvent
}

type ClearActiveEventInput struct {
	GuildID string
}

type AppendEventInput struct {
	Record *models.AttendanceRecord
}

type ListEventsInput struct {
	GuildID string
}

type ListEventsOutput struct {
	Records []*models.AttendanceRecord
}

type CountEventsInput struct {
	GuildID string
}

type HasEventInput struct {
	GuildID string
	Name    string
	EndTime time.Time
}

type GetParticipantInput struct {
	GuildID     string
	Participant string
}

type SaveParticipantInput struct {
	Participant *models.ParticipantAttendance
}

type ListParticipantsInput struct {
	GuildID string
}

type ListParticipantsOutput struct {
	Participants []*models.ParticipantAttendance
}
