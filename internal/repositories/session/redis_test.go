package session

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
	// Create a new miniredis server for each test
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

func (s *RedisRepositoryTestSuite) TestSaveAndGetActiveSession() {
	session := &models.RollSession{
		GuildID:   "test-guild-id",
		Item:      "Ashbringer",
		StartedBy: "test-starter-id",
		StartTime: s.testNow,
		State:     models.SessionStateOpen,
		Submissions: []*models.Submission{
			{
				Participant: "test-player-id",
				Value:       42,
				Round:       0,
				Timestamp:   s.testNow,
			},
		},
	}

	err := s.repo.SaveActiveSession(context.Background(), &SaveActiveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetActiveSession(context.Background(), &GetActiveSessionInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("Ashbringer", retrieved.Item)
	s.Equal("test-starter-id", retrieved.StartedBy)
	s.Equal(models.SessionStateOpen, retrieved.State)
	s.Equal(0, retrieved.RerollRound)
	s.Empty(retrieved.Eligible)
	s.Len(retrieved.Submissions, 1)
	s.Equal("test-player-id", retrieved.Submissions[0].Participant)
	s.Equal(42, retrieved.Submissions[0].Value)
	s.Equal(s.testNow.Unix(), retrieved.StartTime.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetActiveSessionNotFound() {
	_, err := s.repo.GetActiveSession(context.Background(), &GetActiveSessionInput{
		GuildID: "missing-guild-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSessionsAreIsolatedByGuild() {
	session := &models.RollSession{
		GuildID:   "guild-a",
		Item:      "Thunderfury",
		StartedBy: "test-starter-id",
		StartTime: s.testNow,
		State:     models.SessionStateOpen,
	}

	err := s.repo.SaveActiveSession(context.Background(), &SaveActiveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	_, err = s.repo.GetActiveSession(context.Background(), &GetActiveSessionInput{
		GuildID: "guild-b",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestClearActiveSession() {
	session := &models.RollSession{
		GuildID:   "test-guild-id",
		Item:      "Thunderfury",
		StartedBy: "test-starter-id",
		StartTime: s.testNow,
		State:     models.SessionStateRerolling,
		Eligible:  []string{"p1", "p2"},
	}

	err := s.repo.SaveActiveSession(context.Background(), &SaveActiveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	err = s.repo.ClearActiveSession(context.Background(), &ClearActiveSessionInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetActiveSession(context.Background(), &GetActiveSessionInput{
		GuildID: "test-guild-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)

	// Clearing an already empty slot is not an error
	err = s.repo.ClearActiveSession(context.Background(), &ClearActiveSessionInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
}
