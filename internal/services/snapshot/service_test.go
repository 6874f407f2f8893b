package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	settingsRepo "lootroll/internal/repositories/settings"
	statsRepo "lootroll/internal/repositories/stats"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type SnapshotServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	service Service
	ctx     context.Context

	sessionRepo    sessionRepo.Repository
	historyRepo    historyRepo.Repository
	statsRepo      statsRepo.Repository
	attendanceRepo attendanceRepo.Repository
	settingsRepo   settingsRepo.Repository

	testTime    time.Time
	testGuildID string
}

func (s *SnapshotServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.service = s.newService(s.client)

	s.ctx = context.Background()
	s.testTime = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
}

func (s *SnapshotServiceTestSuite) newService(client *redis.Client) Service {
	var err error

	s.sessionRepo, err = sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	s.historyRepo, err = historyRepo.NewRedis(&historyRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	s.statsRepo, err = statsRepo.NewRedis(&statsRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	s.attendanceRepo, err = attendanceRepo.NewRedis(&attendanceRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	s.settingsRepo, err = settingsRepo.NewRedis(&settingsRepo.Config{RedisClient: client})
	s.Require().NoError(err)

	svc, err := New(&Config{
		SessionRepo:    s.sessionRepo,
		HistoryRepo:    s.historyRepo,
		StatsRepo:      s.statsRepo,
		AttendanceRepo: s.attendanceRepo,
		SettingsRepo:   s.settingsRepo,
	})
	s.Require().NoError(err)
	return svc
}

func (s *SnapshotServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}

// seedState writes one of everything into the ledgers
func (s *SnapshotServiceTestSuite) seedState() {
	err := s.historyRepo.AppendRecord(s.ctx, &historyRepo.AppendRecordInput{
		Record: &models.RollRecord{
			ID:           "record-1",
			GuildID:      s.testGuildID,
			Item:         "Ashbringer",
			Winner:       "p1",
			WinningValue: 98,
			StartedBy:    "p9",
			StartTime:    s.testTime,
			EndTime:      s.testTime.Add(5 * time.Minute),
			Submissions: []*models.Submission{
				{Participant: "p1", Value: 98, Round: 0, Timestamp: s.testTime.Add(time.Minute)},
			},
		},
	})
	s.Require().NoError(err)

	stats := models.NewParticipantStats(s.testGuildID, "p1")
	stats.Wins = 1
	stats.TotalSubmissions = 1
	stats.ValueSum = 98
	stats.HighestValue = 98
	stats.LowestValue = 98
	err = s.statsRepo.SaveStats(s.ctx, &statsRepo.SaveStatsInput{Stats: stats})
	s.Require().NoError(err)

	err = s.attendanceRepo.AppendEvent(s.ctx, &attendanceRepo.AppendEventInput{
		Record: &models.AttendanceRecord{
			ID:        "event-1",
			GuildID:   s.testGuildID,
			Name:      "Molten Core",
			StartedBy: "p9",
			StartTime: s.testTime,
			EndTime:   s.testTime.Add(2 * time.Hour),
			Date:      "2026-03-14",
			Attendees: []string{"p1"},
		},
	})
	s.Require().NoError(err)

	err = s.attendanceRepo.SaveParticipant(s.ctx, &attendanceRepo.SaveParticipantInput{
		Participant: &models.ParticipantAttendance{
			GuildID:     s.testGuildID,
			Participant: "p1",
			TotalEvents: 1,
			Dates:       []string{"2026-03-14"},
		},
	})
	s.Require().NoError(err)

	err = s.sessionRepo.SaveActiveSession(s.ctx, &sessionRepo.SaveActiveSessionInput{
		Session: &models.RollSession{
			GuildID:   s.testGuildID,
			Item:      "Thunderfury Binding",
			StartedBy: "p9",
			StartTime: s.testTime.Add(3 * time.Hour),
			State:     models.SessionStateOpen,
		},
	})
	s.Require().NoError(err)

	err = s.settingsRepo.SetSetting(s.ctx, &settingsRepo.SetSettingInput{
		GuildID: s.testGuildID,
		Key:     "announce_on_win",
		Value:   "false",
	})
	s.Require().NoError(err)
}

func (s *SnapshotServiceTestSuite) TestExport() {
	s.seedState()

	out, err := s.service.Export(s.ctx, &ExportInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	snap := out.Snapshot
	s.Equal(models.SchemaVersion, snap.SchemaVersion)
	s.Equal(s.testGuildID, snap.GuildID)
	s.Require().Len(snap.History, 1)
	s.Equal("record-1", snap.History[0].ID)
	s.Require().Contains(snap.Stats, "p1")
	s.Equal(1, snap.Stats["p1"].Wins)
	s.Require().Len(snap.Attendance.Events, 1)
	s.Equal(1, snap.Attendance.Participants["p1"].TotalEvents)
	s.Require().NotNil(snap.ActiveSession)
	s.Equal("Thunderfury Binding", snap.ActiveSession.Item)
	s.Nil(snap.ActiveEvent)
	s.Equal("false", snap.Settings["announce_on_win"])
}

func (s *SnapshotServiceTestSuite) TestRoundTrip() {
	s.seedState()

	exported, err := s.service.Export(s.ctx, &ExportInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	// Import into a fresh store, then export again
	mr2, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr2.Close()
	client2 := redis.NewClient(&redis.Options{Addr: mr2.Addr()})
	defer client2.Close()
	service2 := s.newService(client2)

	importOut, err := service2.Import(s.ctx, &ImportInput{Snapshot: exported.Snapshot})
	s.Require().NoError(err)
	s.Equal(1, importOut.RollRecords)
	s.Equal(1, importOut.AttendanceRecords)

	reexported, err := service2.Export(s.ctx, &ExportInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	// No field loss across a persist and reload with no mutation between
	original, err := json.Marshal(exported.Snapshot)
	s.Require().NoError(err)
	reloaded, err := json.Marshal(reexported.Snapshot)
	s.Require().NoError(err)
	s.JSONEq(string(original), string(reloaded))
}

func (s *SnapshotServiceTestSuite) TestDecodeFillsAbsentPieces() {
	snap, err := Decode([]byte(`{"guildId":"test-guild-id"}`))
	s.Require().NoError(err)

	s.Equal(models.SchemaVersion, snap.SchemaVersion)
	s.NotNil(snap.History)
	s.Empty(snap.History)
	s.NotNil(snap.Stats)
	s.NotNil(snap.Attendance.Events)
	s.NotNil(snap.Attendance.Participants)
	s.NotNil(snap.Settings)
	s.Nil(snap.ActiveSession)
}

func (s *SnapshotServiceTestSuite) TestDecodeKeepsPresentValues() {
	snap, err := Decode([]byte(`{
		"schemaVersion": 1,
		"guildId": "test-guild-id",
		"settings": {"announce_on_win": "false"}
	}`))
	s.Require().NoError(err)

	s.Equal(1, snap.SchemaVersion)
	s.Equal("false", snap.Settings["announce_on_win"])
}

func (s *SnapshotServiceTestSuite) TestImportRejectsNewerSchema() {
	_, err := s.service.Import(s.ctx, &ImportInput{
		Snapshot: &models.Snapshot{
			SchemaVersion: models.SchemaVersion + 1,
			GuildID:       s.testGuildID,
		},
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNewerSchema)
}

func (s *SnapshotServiceTestSuite) TestImportRequiresGuildID() {
	_, err := s.service.Import(s.ctx, &ImportInput{
		Snapshot: &models.Snapshot{},
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrMissingGuildID)
}
