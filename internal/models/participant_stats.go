package models

// ParticipantStats holds a participant's lifetime roll counters for a guild.
// Only counters are stored; the ratio values are derived on read so they can
// never drift from the counters.
type ParticipantStats struct {
	// GuildID is the guild the counters belong to
	GuildID string

	// Participant is the identifier of the participant
	Participant string

	// Wins is the number of sessions won
	Wins int

	// Losses is the number of sessions participated in and lost
	Losses int

	// TotalSubmissions is the number of counted submissions
	TotalSubmissions int

	// ValueSum is the sum of all counted submission values
	ValueSum int

	// HighestValue is the highest counted value, 0 until a value is recorded
	HighestValue int

	// LowestValue is the lowest counted value. Initialized to RollCeiling so
	// the first recorded value always moves it.
	LowestValue int
}

// NewParticipantStats returns a zero-state record for a participant
func NewParticipantStats(guildID, participant string) *ParticipantStats {
	return &ParticipantStats{
		GuildID:     guildID,
		Participant: participant,
		LowestValue: RollCeiling,
	}
}

// AverageValue returns the mean counted submission value, or 0 with no submissions
func (s *ParticipantStats) AverageValue() float64 {
	if s.TotalSubmissions == 0 {
		return 0
	}
	return float64(s.ValueSum) / float64(s.TotalSubmissions)
}

// WinRate returns the percentage of decided sessions won, or 0 with no decided outcomes
func (s *ParticipantStats) WinRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided) * 100
}
