package history

import (
	"context"
	"testing"
	"time"

	"lootroll/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) record(id, item string, end time.Time) *models.RollRecord {
	return &models.RollRecord{
		ID:           id,
		GuildID:      "test-guild-id",
		Item:         item,
		Winner:       "test-winner-id",
		WinningValue: 87,
		StartedBy:    "test-starter-id",
		StartTime:    end.Add(-5 * time.Minute),
		EndTime:      end,
		Submissions: []*models.Submission{
			{Participant: "test-winner-id", Value: 87, Round: 0, Timestamp: end},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndListRecords() {
	first := s.record("record-1", "Ashbringer", s.testNow)
	second := s.record("record-2", "Thunderfury", s.testNow.Add(time.Hour))

	s.Require().NoError(s.repo.AppendRecord(context.Background(), &AppendRecordInput{Record: first}))
	s.Require().NoError(s.repo.AppendRecord(context.Background(), &AppendRecordInput{Record: second}))

	result, err := s.repo.ListRecords(context.Background(), &ListRecordsInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
	s.Require().Len(result.Records, 2)

	// Most recently ended first
	s.Equal("record-2", result.Records[0].ID)
	s.Equal("record-1", result.Records[1].ID)
	s.Equal("Thunderfury", result.Records[0].Item)
	s.Equal("test-winner-id", result.Records[0].Winner)
	s.Equal(87, result.Records[0].WinningValue)
	s.Len(result.Records[1].Submissions, 1)
}

func (s *RedisRepositoryTestSuite) TestListRecordsEmpty() {
	result, err := s.repo.ListRecords(context.Background(), &ListRecordsInput{
		GuildID: "empty-guild-id",
	})
	s.Require().NoError(err)
	s.Empty(result.Records)
}

func (s *RedisRepositoryTestSuite) TestHasRecord() {
	record := s.record("record-1", "Ashbringer", s.testNow)
	s.Require().NoError(s.repo.AppendRecord(context.Background(), &AppendRecordInput{Record: record}))

	// Same end time and item
	found, err := s.repo.HasRecord(context.Background(), &HasRecordInput{
		GuildID: "test-guild-id",
		Item:    "Ashbringer",
		EndTime: s.testNow,
	})
	s.Require().NoError(err)
	s.True(found)

	// Same end time, different item
	found, err = s.repo.HasRecord(context.Background(), &HasRecordInput{
		GuildID: "test-guild-id",
		Item:    "Thunderfury",
		EndTime: s.testNow,
	})
	s.Require().NoError(err)
	s.False(found)

	// Same item, different end time
	found, err = s.repo.HasRecord(context.Background(), &HasRecordInput{
		GuildID: "test-guild-id",
		Item:    "Ashbringer",
		EndTime: s.testNow.Add(time.Second),
	})
	s.Require().NoError(err)
	s.False(found)
}
