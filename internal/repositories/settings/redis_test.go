package settings

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSetAndGetSetting() {
	err := s.repo.SetSetting(context.Background(), &SetSettingInput{
		GuildID: "test-guild-id",
		Key:     "announce_on_win",
		Value:   "false",
	})
	s.Require().NoError(err)

	value, err := s.repo.GetSetting(context.Background(), &GetSettingInput{
		GuildID: "test-guild-id",
		Key:     "announce_on_win",
	})
	s.Require().NoError(err)
	s.Equal("false", value)
}

func (s *RedisRepositoryTestSuite) TestGetSettingNotFound() {
	_, err := s.repo.GetSetting(context.Background(), &GetSettingInput{
		GuildID: "test-guild-id",
		Key:     "announce_on_win",
	})
	s.Require().Error(err)
	s.Equal(ErrSettingNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestGetAllSettings() {
	s.Require().NoError(s.repo.SetSetting(context.Background(), &SetSettingInput{
		GuildID: "test-guild-id",
		Key:     "announce_on_win",
		Value:   "true",
	}))
	s.Require().NoError(s.repo.SetSetting(context.Background(), &SetSettingInput{
		GuildID: "test-guild-id",
		Key:     "attendance_priority_weight",
		Value:   "0.25",
	}))

	values, err := s.repo.GetAllSettings(context.Background(), &GetAllSettingsInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
	s.Len(values, 2)
	s.Equal("true", values["announce_on_win"])
	s.Equal("0.25", values["attendance_priority_weight"])

	// Settings are isolated by guild
	values, err = s.repo.GetAllSettings(context.Background(), &GetAllSettingsInput{
		GuildID: "other-guild-id",
	})
	s.Require().NoError(err)
	s.Empty(values)
}
