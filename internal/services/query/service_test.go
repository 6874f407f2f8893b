package query

import (
	"context"
	"testing"
	"time"

	"lootroll/internal/models"
	historyRepo "lootroll/internal/repositories/history"
	historyMocks "lootroll/internal/repositories/history/mocks"
	attendanceService "lootroll/internal/services/attendance"
	attendanceMocks "lootroll/internal/services/attendance/mocks"
	settingsService "lootroll/internal/services/settings"
	settingsMocks "lootroll/internal/services/settings/mocks"
	statsService "lootroll/internal/services/stats"
	statsMocks "lootroll/internal/services/stats/mocks"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QueryServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockHistoryRepo *historyMocks.MockRepository
	mockStats       *statsMocks.MockService
	mockAttendance  *attendanceMocks.MockService
	mockSettings    *settingsMocks.MockService
	service         Service
	ctx             context.Context

	testGuildID string
	records     []*models.RollRecord
}

func (s *QueryServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockHistoryRepo = historyMocks.NewMockRepository(s.mockCtrl)
	s.mockStats = statsMocks.NewMockService(s.mockCtrl)
	s.mockAttendance = attendanceMocks.NewMockService(s.mockCtrl)
	s.mockSettings = settingsMocks.NewMockService(s.mockCtrl)

	s.ctx = context.Background()
	s.testGuildID = "test-guild-id"

	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	s.records = []*models.RollRecord{
		{ID: "r3", GuildID: s.testGuildID, Item: "Ashbringer", Winner: "p1", EndTime: base.AddDate(0, 0, 14)},
		{ID: "r2", GuildID: s.testGuildID, Item: "Thunderfury Binding", Winner: "p2", EndTime: base.AddDate(0, 0, 7)},
		{ID: "r1", GuildID: s.testGuildID, Item: "Onyxia Scale", Winner: "p1", EndTime: base},
	}

	svc, err := New(&Config{
		HistoryRepo:       s.mockHistoryRepo,
		StatsService:      s.mockStats,
		AttendanceService: s.mockAttendance,
		SettingsService:   s.mockSettings,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *QueryServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QueryServiceTestSuite))
}

func (s *QueryServiceTestSuite) expectList() {
	s.mockHistoryRepo.EXPECT().
		ListRecords(s.ctx, &historyRepo.ListRecordsInput{GuildID: s.testGuildID}).
		Return(&historyRepo.ListRecordsOutput{Records: s.records}, nil)
}

func (s *QueryServiceTestSuite) recordIDs(records []*models.RollRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func (s *QueryServiceTestSuite) TestGetHistoryNoFilters() {
	s.expectList()

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal([]string{"r3", "r2", "r1"}, s.recordIDs(out.Records))
}

func (s *QueryServiceTestSuite) TestGetHistoryFiltersByWinner() {
	s.expectList()

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{
		GuildID: s.testGuildID,
		Filters: &HistoryFilters{Winner: "p1"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"r3", "r1"}, s.recordIDs(out.Records))
}

func (s *QueryServiceTestSuite) TestGetHistoryFiltersByItemSubstring() {
	s.expectList()

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{
		GuildID: s.testGuildID,
		Filters: &HistoryFilters{Item: "thunder"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"r2"}, s.recordIDs(out.Records))
}

func (s *QueryServiceTestSuite) TestGetHistoryFiltersByDateRange() {
	s.expectList()

	// Bounds are inclusive on both ends
	start := s.records[2].EndTime
	end := s.records[1].EndTime

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{
		GuildID: s.testGuildID,
		Filters: &HistoryFilters{StartDate: &start, EndDate: &end},
	})
	s.Require().NoError(err)
	s.Equal([]string{"r2", "r1"}, s.recordIDs(out.Records))
}

func (s *QueryServiceTestSuite) TestGetHistoryCombinedFilters() {
	s.expectList()

	end := s.records[1].EndTime

	out, err := s.service.GetHistory(s.ctx, &GetHistoryInput{
		GuildID: s.testGuildID,
		Filters: &HistoryFilters{Winner: "p1", EndDate: &end},
	})
	s.Require().NoError(err)
	s.Equal([]string{"r1"}, s.recordIDs(out.Records))
}

func (s *QueryServiceTestSuite) expectPrioritySettings(weight, minEvents string) {
	s.mockSettings.EXPECT().
		Get(s.ctx, &settingsService.GetInput{
			GuildID: s.testGuildID,
			Key:     settingsService.KeyAttendancePriorityWeight,
		}).
		Return(&settingsService.GetOutput{Value: weight}, nil)
	s.mockSettings.EXPECT().
		Get(s.ctx, &settingsService.GetInput{
			GuildID: s.testGuildID,
			Key:     settingsService.KeyMinEventsForPriority,
		}).
		Return(&settingsService.GetOutput{Value: minEvents}, nil)
}

func (s *QueryServiceTestSuite) expectRate(participant string, rate float64, attended, recorded int) {
	s.mockAttendance.EXPECT().
		GetAttendanceRate(s.ctx, &attendanceService.GetAttendanceRateInput{
			GuildID:     s.testGuildID,
			Participant: participant,
		}).
		Return(&attendanceService.GetAttendanceRateOutput{
			Rate:           rate,
			EventsAttended: attended,
			EventsRecorded: recorded,
		}, nil)
}

func (s *QueryServiceTestSuite) TestGetLeaderboard() {
	s.expectPrioritySettings("0.5", "2")

	s.mockStats.EXPECT().
		GetAllStats(s.ctx, &statsService.GetAllStatsInput{GuildID: s.testGuildID}).
		Return(&statsService.GetAllStatsOutput{
			Stats: []*models.ParticipantStats{
				{GuildID: s.testGuildID, Participant: "p1", Wins: 3, Losses: 1},
				{GuildID: s.testGuildID, Participant: "p2", Wins: 2, Losses: 2},
			},
		}, nil)

	s.expectRate("p1", 50.0, 2, 4)
	s.expectRate("p2", 100.0, 4, 4)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)

	// p2: 0.5*50 + 0.5*100 = 75, p1: 0.5*75 + 0.5*50 = 62.5
	s.Equal("p2", out.Entries[0].Participant)
	s.InDelta(75.0, out.Entries[0].Priority, 0.001)
	s.Equal("p1", out.Entries[1].Participant)
	s.InDelta(62.5, out.Entries[1].Priority, 0.001)
}

func (s *QueryServiceTestSuite) TestGetLeaderboardBelowMinEventsLosesAttendanceShare() {
	s.expectPrioritySettings("0.5", "5")

	s.mockStats.EXPECT().
		GetAllStats(s.ctx, &statsService.GetAllStatsInput{GuildID: s.testGuildID}).
		Return(&statsService.GetAllStatsOutput{
			Stats: []*models.ParticipantStats{
				{GuildID: s.testGuildID, Participant: "p1", Wins: 3, Losses: 1},
			},
		}, nil)

	// Perfect rate but only two attended events, below the threshold
	s.expectRate("p1", 100.0, 2, 2)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.InDelta(37.5, out.Entries[0].Priority, 0.001)
	s.Equal(100.0, out.Entries[0].AttendanceRate)
}

func (s *QueryServiceTestSuite) TestGetLeaderboardEmpty() {
	s.expectPrioritySettings("0.5", "5")

	s.mockStats.EXPECT().
		GetAllStats(s.ctx, &statsService.GetAllStatsInput{GuildID: s.testGuildID}).
		Return(&statsService.GetAllStatsOutput{Stats: nil}, nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Empty(out.Entries)
}
