package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	settingsRepo "lootroll/internal/repositories/settings"
	statsRepo "lootroll/internal/repositories/stats"
)

// Define errors
var (
	ErrNilSnapshot     = errors.New("snapshot cannot be nil")
	ErrMissingGuildID  = errors.New("snapshot guild ID is required")
	ErrNewerSchema     = errors.New("snapshot schema version is newer than this build understands")
	ErrNilConfig       = errors.New("config cannot be nil")
	ErrNilSessionRepo  = errors.New("session repository cannot be nil")
	ErrNilHistoryRepo  = errors.New("history repository cannot be nil")
	ErrNilStatsRepo    = errors.New("stats repository cannot be nil")
	ErrNilAttendance   = errors.New("attendance repository cannot be nil")
	ErrNilSettingsRepo = errors.New("settings repository cannot be nil")
)

// service implements the Service interface
type service struct {
	sessionRepo    sessionRepo.Repository
	historyRepo    historyRepo.Repository
	statsRepo      statsRepo.Repository
	attendanceRepo attendanceRepo.Repository
	settingsRepo   settingsRepo.Repository
}

// New creates a new snapshot service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}

	if cfg.AttendanceRepo == nil {
		return nil, ErrNilAttendance
	}

	if cfg.SettingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	return &service{
		sessionRepo:    cfg.SessionRepo,
		historyRepo:    cfg.HistoryRepo,
		statsRepo:      cfg.StatsRepo,
		attendanceRepo: cfg.AttendanceRepo,
		settingsRepo:   cfg.SettingsRepo,
	}, nil
}

// Export reads every ledger into one snapshot
func (s *service) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	snap := &models.Snapshot{
		SchemaVersion: models.SchemaVersion,
		GuildID:       input.GuildID,
	}

	historyOutput, err := s.historyRepo.ListRecords(ctx, &historyRepo.ListRecordsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roll records: %w", err)
	}
	// The repository lists newest first; snapshots store oldest first
	snap.History = reverseRollRecords(historyOutput.Records)

	statsOutput, err := s.statsRepo.ListStats(ctx, &statsRepo.ListStatsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}
	snap.Stats = make(map[string]*models.ParticipantStats, len(statsOutput.Stats))
	for _, st := range statsOutput.Stats {
		snap.Stats[st.Participant] = st
	}

	eventsOutput, err := s.attendanceRepo.ListEvents(ctx, &attendanceRepo.ListEventsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	snap.Attendance.Events = reverseAttendanceRecords(eventsOutput.Records)

	participantsOutput, err := s.attendanceRepo.ListParticipants(ctx, &attendanceRepo.ListParticipantsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance participants: %w", err)
	}
	snap.Attendance.Participants = make(map[string]*models.ParticipantAttendance, len(participantsOutput.Participants))
	for _, p := range participantsOutput.Participants {
		snap.Attendance.Participants[p.Participant] = p
	}

	activeSession, err := s.sessionRepo.GetActiveSession(ctx, &sessionRepo.GetActiveSessionInput{
		GuildID: input.GuildID,
	})
	if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	snap.ActiveSession = activeSession

	activeEvent, err := s.attendanceRepo.GetActiveEvent(ctx, &attendanceRepo.GetActiveEventInput{
		GuildID: input.GuildID,
	})
	if err != nil && !errors.Is(err, attendanceRepo.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}
	snap.ActiveEvent = activeEvent

	settings, err := s.settingsRepo.GetAllSettings(ctx, &settingsRepo.GetAllSettingsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	snap.Settings = settings
	if snap.Settings == nil {
		snap.Settings = map[string]string{}
	}

	return &ExportOutput{Snapshot: snap}, nil
}

// Import writes a snapshot back into the ledgers
func (s *service) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Snapshot == nil {
		return nil, ErrNilSnapshot
	}

	snap := input.Snapshot
	fillDefaults(snap)

	if snap.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	if snap.SchemaVersion > models.SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrNewerSchema, snap.SchemaVersion)
	}

	for _, record := range snap.History {
		if err := s.historyRepo.AppendRecord(ctx, &historyRepo.AppendRecordInput{
			Record: record,
		}); err != nil {
			return nil, fmt.Errorf("failed to append roll record: %w", err)
		}
	}

	for _, st := range snap.Stats {
		if err := s.statsRepo.SaveStats(ctx, &statsRepo.SaveStatsInput{
			Stats: st,
		}); err != nil {
			return nil, fmt.Errorf("failed to save stats: %w", err)
		}
	}

	for _, record := range snap.Attendance.Events {
		if err := s.attendanceRepo.AppendEvent(ctx, &attendanceRepo.AppendEventInput{
			Record: record,
		}); err != nil {
			return nil, fmt.Errorf("failed to append attendance record: %w", err)
		}
	}

	for _, p := range snap.Attendance.Participants {
		if err := s.attendanceRepo.SaveParticipant(ctx, &attendanceRepo.SaveParticipantInput{
			Participant: p,
		}); err != nil {
			return nil, fmt.Errorf("failed to save attendance participant: %w", err)
		}
	}

	if snap.ActiveSession != nil {
		if err := s.sessionRepo.SaveActiveSession(ctx, &sessionRepo.SaveActiveSessionInput{
			Session: snap.ActiveSession,
		}); err != nil {
			return nil, fmt.Errorf("failed to save active session: %w", err)
		}
	}

	if snap.ActiveEvent != nil {
		if err := s.attendanceRepo.SaveActiveEvent(ctx, &attendanceRepo.SaveActiveEventInput{
			Event: snap.ActiveEvent,
		}); err != nil {
			return nil, fmt.Errorf("failed to save active event: %w", err)
		}
	}

	for key, value := range snap.Settings {
		if err := s.settingsRepo.SetSetting(ctx, &settingsRepo.SetSettingInput{
			GuildID: snap.GuildID,
			Key:     key,
			Value:   value,
		}); err != nil {
			return nil, fmt.Errorf("failed to set setting: %w", err)
		}
	}

	return &ImportOutput{
		RollRecords:       len(snap.History),
		AttendanceRecords: len(snap.Attendance.Events),
	}, nil
}

// Decode parses snapshot JSON and fills absent pieces with defaults.
// Already-present values are never replaced.
func Decode(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	fillDefaults(&snap)
	return &snap, nil
}

// fillDefaults performs the additive migration: absent containers become
// empty, an absent schema version becomes the current one.
func fillDefaults(snap *models.Snapshot) {
	if snap.SchemaVersion == 0 {
		snap.SchemaVersion = models.SchemaVersion
	}

	if snap.History == nil {
		snap.History = []*models.RollRecord{}
	}

	if snap.Stats == nil {
		snap.Stats = map[string]*models.ParticipantStats{}
	}

	if snap.Attendance.Events == nil {
		snap.Attendance.Events = []*models.AttendanceRecord{}
	}

	if snap.Attendance.Participants == nil {
		snap.Attendance.Participants = map[string]*models.ParticipantAttendance{}
	}

	if snap.Settings == nil {
		snap.Settings = map[string]string{}
	}
}

func reverseRollRecords(records []*models.RollRecord) []*models.RollRecord {
	out := make([]*models.RollRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

func reverseAttendanceRecords(records []*models.AttendanceRecord) []*models.AttendanceRecord {
	out := make([]*models.AttendanceRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
