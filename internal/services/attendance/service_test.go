package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	clockMocks "lootroll/internal/common/clock/mocks"
	uuidMocks "lootroll/internal/common/uuid/mocks"
	attendanceRepo "lootroll/internal/repositories/attendance"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	service   Service
	ctx       context.Context

	testTime    time.Time
	testGuildID string
}

func (s *AttendanceServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := attendanceRepo.NewRedis(&attendanceRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.testTime = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	recordCount := 0
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		recordCount++
		return fmt.Sprintf("test-record-%d", recordCount)
	}).AnyTimes()

	svc, err := New(&Config{
		AttendanceRepo: repo,
		Clock:          s.mockClock,
		UUIDGenerator:  s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
}

func (s *AttendanceServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (s *AttendanceServiceTestSuite) startEvent(name string) {
	_, err := s.service.StartEvent(s.ctx, &StartEventInput{
		GuildID:   s.testGuildID,
		Name:      name,
		StartedBy: "test-starter-id",
	})
	s.Require().NoError(err)
}

func (s *AttendanceServiceTestSuite) TestStartEvent() {
	out, err := s.service.StartEvent(s.ctx, &StartEventInput{
		GuildID:   s.testGuildID,
		Name:      "Molten Core",
		StartedBy: "test-starter-id",
	})
	s.Require().NoError(err)
	s.Equal("Molten Core", out.Event.Name)
	s.Equal("2026-03-14", out.Event.Date)
	s.Empty(out.Event.Attendees)

	// A second event while one is active is rejected
	_, err = s.service.StartEvent(s.ctx, &StartEventInput{
		GuildID:   s.testGuildID,
		Name:      "Onyxia",
		StartedBy: "test-starter-id",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrEventAlreadyActive)
}

func (s *AttendanceServiceTestSuite) TestAddAttendee() {
	s.startEvent("Molten Core")

	_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p1",
	})
	s.Require().NoError(err)

	out, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p2",
	})
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p2"}, out.Event.Attendees)

	// Re-adding is rejected and the roster is unchanged
	_, err = s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p1",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrDuplicateAttendee)

	active, err := s.service.GetActiveEvent(s.ctx, &GetActiveEventInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p2"}, active.Event.Attendees)
}

func (s *AttendanceServiceTestSuite) TestAddAttendeeNoActiveEvent() {
	_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p1",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNoActiveEvent)
}

func (s *AttendanceServiceTestSuite) TestRemoveAttendee() {
	s.startEvent("Molten Core")
	for _, p := range []string{"p1", "p2", "p3"} {
		_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
			GuildID: s.testGuildID, Participant: p,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.RemoveAttendee(s.ctx, &RemoveAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p2",
	})
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p3"}, out.Event.Attendees)

	_, err = s.service.RemoveAttendee(s.ctx, &RemoveAttendeeInput{
		GuildID:     s.testGuildID,
		Participant: "p2",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrAttendeeNotFound)
}

func (s *AttendanceServiceTestSuite) TestEndEvent() {
	s.startEvent("Molten Core")
	_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)

	out, err := s.service.EndEvent(s.ctx, &EndEventInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal("Molten Core", out.Record.Name)
	s.Equal([]string{"p1"}, out.Record.Attendees)
	s.Equal("2026-03-14", out.Record.Date)

	// The active slot is cleared
	active, err := s.service.GetActiveEvent(s.ctx, &GetActiveEventInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Nil(active.Event)

	// History holds one record
	historyOut, err := s.service.GetHistory(s.ctx, &GetHistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().Len(historyOut.Records, 1)
	s.Equal([]string{"p1"}, historyOut.Records[0].Attendees)

	_, err = s.service.EndEvent(s.ctx, &EndEventInput{GuildID: s.testGuildID})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNoActiveEvent)
}

func (s *AttendanceServiceTestSuite) TestCancelDiscardsWithoutHistory() {
	s.startEvent("Molten Core")
	_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)

	out, err := s.service.Cancel(s.ctx, &CancelInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal("Molten Core", out.Event.Name)

	historyOut, err := s.service.GetHistory(s.ctx, &GetHistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Empty(historyOut.Records)

	rate, err := s.service.GetAttendanceRate(s.ctx, &GetAttendanceRateInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(0.0, rate.Rate)
}

func (s *AttendanceServiceTestSuite) TestAttendanceRate() {
	// No history at all: zero rate
	rate, err := s.service.GetAttendanceRate(s.ctx, &GetAttendanceRateInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(0.0, rate.Rate)

	// Two events, p1 attends both, p2 attends one
	for i, attendees := range [][]string{{"p1", "p2"}, {"p1"}} {
		s.startEvent(fmt.Sprintf("Raid %d", i+1))
		for _, p := range attendees {
			_, err := s.service.AddAttendee(s.ctx, &AddAttendeeInput{
				GuildID: s.testGuildID, Participant: p,
			})
			s.Require().NoError(err)
		}
		_, err := s.service.EndEvent(s.ctx, &EndEventInput{GuildID: s.testGuildID})
		s.Require().NoError(err)
	}

	rate, err = s.service.GetAttendanceRate(s.ctx, &GetAttendanceRateInput{
		GuildID: s.testGuildID, Participant: "p1",
	})
	s.Require().NoError(err)
	s.Equal(100.0, rate.Rate)
	s.Equal(2, rate.EventsAttended)
	s.Equal(2, rate.EventsRecorded)

	rate, err = s.service.GetAttendanceRate(s.ctx, &GetAttendanceRateInput{
		GuildID: s.testGuildID, Participant: "p2",
	})
	s.Require().NoError(err)
	s.Equal(50.0, rate.Rate)

	// Never attended with history present: zero rate, not an error
	rate, err = s.service.GetAttendanceRate(s.ctx, &GetAttendanceRateInput{
		GuildID: s.testGuildID, Participant: "p9",
	})
	s.Require().NoError(err)
	s.Equal(0.0, rate.Rate)
	s.Equal(2, rate.EventsRecorded)
}
