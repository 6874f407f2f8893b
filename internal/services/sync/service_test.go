package sync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	statsRepo "lootroll/internal/repositories/stats"
	statsService "lootroll/internal/services/stats"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type SyncServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	service Service
	ctx     context.Context

	historyRepo    historyRepo.Repository
	attendanceRepo attendanceRepo.Repository
	stats          statsService.Service

	testTime    time.Time
	testGuildID string
}

func (s *SyncServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.historyRepo, err = historyRepo.NewRedis(&historyRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.attendanceRepo, err = attendanceRepo.NewRedis(&attendanceRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	sr, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.stats, err = statsService.New(&statsService.Config{StatsRepo: sr})
	s.Require().NoError(err)

	svc, err := New(&Config{
		HistoryRepo:    s.historyRepo,
		AttendanceRepo: s.attendanceRepo,
		StatsService:   s.stats,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
	s.testTime = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) rollRecord() *models.RollRecord {
	return &models.RollRecord{
		ID:           "peer-record-1",
		GuildID:      s.testGuildID,
		Item:         "Ashbringer",
		Winner:       "p1",
		WinningValue: 98,
		StartedBy:    "p9",
		StartTime:    s.testTime,
		EndTime:      s.testTime.Add(5 * time.Minute),
		Submissions: []*models.Submission{
			{Participant: "p1", Value: 98, Round: 0, Timestamp: s.testTime.Add(time.Minute)},
			{Participant: "p2", Value: 40, Round: 0, Timestamp: s.testTime.Add(2 * time.Minute)},
		},
	}
}

func (s *SyncServiceTestSuite) attendanceRecord() *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:        "peer-event-1",
		GuildID:   s.testGuildID,
		Name:      "Molten Core",
		StartedBy: "p9",
		StartTime: s.testTime,
		EndTime:   s.testTime.Add(2 * time.Hour),
		Date:      "2026-03-14",
		Attendees: []string{"p1", "p2"},
	}
}

func (s *SyncServiceTestSuite) TestParseRollRecord() {
	data, err := json.Marshal(s.rollRecord())
	s.Require().NoError(err)

	record, err := ParseRollRecord(data)
	s.Require().NoError(err)
	s.Equal("Ashbringer", record.Item)
	s.Require().Len(record.Submissions, 2)
}

func (s *SyncServiceTestSuite) TestParseRollRecordRejectsUnknownFields() {
	_, err := ParseRollRecord([]byte(`{"ID":"r1","Item":"Ashbringer","Backdoor":true}`))
	s.Require().Error(err)
	s.ErrorIs(err, ErrMalformedRecord)
}

func (s *SyncServiceTestSuite) TestParseRollRecordRejectsTrailingData() {
	record := s.rollRecord()
	data, err := json.Marshal(record)
	s.Require().NoError(err)

	_, err = ParseRollRecord(append(data, []byte(`{"ID":"r2"}`)...))
	s.Require().Error(err)
	s.ErrorIs(err, ErrMalformedRecord)
}

func (s *SyncServiceTestSuite) TestParseRollRecordValidation() {
	cases := []struct {
		name   string
		mutate func(r *models.RollRecord)
	}{
		{"missing id", func(r *models.RollRecord) { r.ID = "" }},
		{"missing guild", func(r *models.RollRecord) { r.GuildID = "" }},
		{"missing item", func(r *models.RollRecord) { r.Item = "" }},
		{"missing winner", func(r *models.RollRecord) { r.Winner = "" }},
		{"zero end time", func(r *models.RollRecord) { r.EndTime = time.Time{} }},
		{"end before start", func(r *models.RollRecord) { r.EndTime = r.StartTime.Add(-time.Minute) }},
		{"winning value too high", func(r *models.RollRecord) { r.WinningValue = 101 }},
		{"winning value too low", func(r *models.RollRecord) { r.WinningValue = 0 }},
		{"submission out of range", func(r *models.RollRecord) { r.Submissions[1].Value = 0 }},
		{"submission round beyond count", func(r *models.RollRecord) { r.Submissions[1].Round = 3 }},
		{"submission without participant", func(r *models.RollRecord) { r.Submissions[1].Participant = "" }},
	}

	for _, tc := range cases {
		record := s.rollRecord()
		tc.mutate(record)

		data, err := json.Marshal(record)
		s.Require().NoError(err, tc.name)

		_, err = ParseRollRecord(data)
		s.Require().Error(err, tc.name)
		s.ErrorIs(err, ErrInvalidRecord, tc.name)
	}
}

func (s *SyncServiceTestSuite) TestParseAttendanceRecordValidation() {
	cases := []struct {
		name   string
		mutate func(r *models.AttendanceRecord)
	}{
		{"missing id", func(r *models.AttendanceRecord) { r.ID = "" }},
		{"missing name", func(r *models.AttendanceRecord) { r.Name = "" }},
		{"bad date", func(r *models.AttendanceRecord) { r.Date = "14/03/2026" }},
		{"duplicate attendee", func(r *models.AttendanceRecord) { r.Attendees = []string{"p1", "p1"} }},
		{"empty attendee", func(r *models.AttendanceRecord) { r.Attendees = []string{""} }},
	}

	for _, tc := range cases {
		record := s.attendanceRecord()
		tc.mutate(record)

		data, err := json.Marshal(record)
		s.Require().NoError(err, tc.name)

		_, err = ParseAttendanceRecord(data)
		s.Require().Error(err, tc.name)
		s.ErrorIs(err, ErrInvalidRecord, tc.name)
	}
}

func (s *SyncServiceTestSuite) TestMergeRollRecord() {
	out, err := s.service.MergeRollRecord(s.ctx, &MergeRollRecordInput{
		Record: s.rollRecord(),
	})
	s.Require().NoError(err)
	s.True(out.Merged)

	listOut, err := s.historyRepo.ListRecords(s.ctx, &historyRepo.ListRecordsInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Require().Len(listOut.Records, 1)

	// Outcomes were applied exactly as the finalizing peer applied them
	winnerStats, err := s.stats.GetStats(s.ctx, &statsService.GetStatsInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(winnerStats.Stats)
	s.Equal(1, winnerStats.Stats.Wins)
	s.Equal(98, winnerStats.Stats.HighestValue)

	loserStats, err := s.stats.GetStats(s.ctx, &statsService.GetStatsInput{
		GuildID: s.testGuildID, Participant: "p2",
	})
	s.Require().NoError(err)
	s.Require().NotNil(loserStats.Stats)
	s.Equal(1, loserStats.Stats.Losses)
	s.Equal(40, loserStats.Stats.LowestValue)
}

func (s *SyncServiceTestSuite) TestMergeRollRecordSuppressesDuplicate() {
	_, err := s.service.MergeRollRecord(s.ctx, &MergeRollRecordInput{
		Record: s.rollRecord(),
	})
	s.Require().NoError(err)

	// Same end time and item from another peer, different record ID
	duplicate := s.rollRecord()
	duplicate.ID = "peer-record-other"

	out, err := s.service.MergeRollRecord(s.ctx, &MergeRollRecordInput{
		Record: duplicate,
	})
	s.Require().NoError(err)
	s.False(out.Merged)

	listOut, err := s.historyRepo.ListRecords(s.ctx, &historyRepo.ListRecordsInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Len(listOut.Records, 1)

	// Stats were not double counted
	winnerStats, err := s.stats.GetStats(s.ctx, &statsService.GetStatsInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(1, winnerStats.Stats.Wins)
}

func (s *SyncServiceTestSuite) TestMergeRollRecordUsesLatestRoundValue() {
	record := s.rollRecord()
	record.RerollRounds = 1
	record.Submissions = []*models.Submission{
		{Participant: "p1", Value: 50, Round: 0, Timestamp: s.testTime},
		{Participant: "p2", Value: 50, Round: 0, Timestamp: s.testTime},
		{Participant: "p1", Value: 98, Round: 1, Timestamp: s.testTime.Add(time.Minute)},
		{Participant: "p2", Value: 12, Round: 1, Timestamp: s.testTime.Add(time.Minute)},
	}

	_, err := s.service.MergeRollRecord(s.ctx, &MergeRollRecordInput{Record: record})
	s.Require().NoError(err)

	loserStats, err := s.stats.GetStats(s.ctx, &statsService.GetStatsInput{
		GuildID: s.testGuildID, Participant: "p2",
	})
	s.Require().NoError(err)
	s.Equal(12, loserStats.Stats.LowestValue)
	s.Equal(1, loserStats.Stats.TotalSubmissions)
}

func (s *SyncServiceTestSuite) TestMergeAttendanceRecord() {
	out, err := s.service.MergeAttendanceRecord(s.ctx, &MergeAttendanceRecordInput{
		Record: s.attendanceRecord(),
	})
	s.Require().NoError(err)
	s.True(out.Merged)

	totals, err := s.attendanceRepo.GetParticipant(s.ctx, &attendanceRepo.GetParticipantInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(1, totals.TotalEvents)
	s.Equal([]string{"2026-03-14"}, totals.Dates)
}

func (s *SyncServiceTestSuite) TestMergeAttendanceRecordSuppressesDuplicate() {
	_, err := s.service.MergeAttendanceRecord(s.ctx, &MergeAttendanceRecordInput{
		Record: s.attendanceRecord(),
	})
	s.Require().NoError(err)

	duplicate := s.attendanceRecord()
	duplicate.ID = "peer-event-other"

	out, err := s.service.MergeAttendanceRecord(s.ctx, &MergeAttendanceRecordInput{
		Record: duplicate,
	})
	s.Require().NoError(err)
	s.False(out.Merged)

	totals, err := s.attendanceRepo.GetParticipant(s.ctx, &attendanceRepo.GetParticipantInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(1, totals.TotalEvents)
}
