package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lootroll/internal/common/clock"
	"lootroll/internal/common/uuid"
	"lootroll/internal/dice"
	"lootroll/internal/handlers/discord"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	settingsRepo "lootroll/internal/repositories/settings"
	statsRepo "lootroll/internal/repositories/stats"
	attendanceService "lootroll/internal/services/attendance"
	queryService "lootroll/internal/services/query"
	sessionService "lootroll/internal/services/session"
	settingsService "lootroll/internal/services/settings"
	snapshotService "lootroll/internal/services/snapshot"
	statsService "lootroll/internal/services/stats"
	syncService "lootroll/internal/services/sync"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// Missing .env is fine in production; everything comes from real env
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to parse configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}

	sessionStore, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session repository")
	}

	historyStore, err := historyRepo.NewRedis(&historyRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create history repository")
	}

	statsStore, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create stats repository")
	}

	attendanceStore, err := attendanceRepo.NewRedis(&attendanceRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create attendance repository")
	}

	settingsStore, err := settingsRepo.NewRedis(&settingsRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create settings repository")
	}

	// The announce sink needs the Discord session before the bot exists
	discordSession, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create discord session")
	}

	settingsSvc, err := settingsService.New(&settingsService.Config{
		SettingsRepo: settingsStore,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create settings service")
	}

	sink, err := discord.NewAnnounceSink(&discord.AnnounceSinkConfig{
		Session:         discordSession,
		SettingsService: settingsSvc,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create announce sink")
	}

	statsSvc, err := statsService.New(&statsService.Config{
		StatsRepo: statsStore,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create stats service")
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:   sessionStore,
		HistoryRepo:   historyStore,
		StatsService:  statsSvc,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		RecordSink:    sink,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session service")
	}

	attendanceSvc, err := attendanceService.New(&attendanceService.Config{
		AttendanceRepo: attendanceStore,
		Clock:          clock.New(),
		UUIDGenerator:  uuid.New(),
		RecordSink:     sink,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create attendance service")
	}

	querySvc, err := queryService.New(&queryService.Config{
		HistoryRepo:       historyStore,
		StatsService:      statsSvc,
		AttendanceService: attendanceSvc,
		SettingsService:   settingsSvc,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create query service")
	}

	syncSvc, err := syncService.New(&syncService.Config{
		HistoryRepo:    historyStore,
		AttendanceRepo: attendanceStore,
		StatsService:   statsSvc,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create sync service")
	}

	snapshotSvc, err := snapshotService.New(&snapshotService.Config{
		SessionRepo:    sessionStore,
		HistoryRepo:    historyStore,
		StatsRepo:      statsStore,
		AttendanceRepo: attendanceStore,
		SettingsRepo:   settingsStore,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create snapshot service")
	}

	bot, err := discord.New(&discord.Config{
		Session:           discordSession,
		ApplicationID:     cfg.ApplicationID,
		GuildID:           cfg.GuildID,
		SessionService:    sessionSvc,
		AttendanceService: attendanceSvc,
		StatsService:      statsSvc,
		QueryService:      querySvc,
		SettingsService:   settingsSvc,
		SyncService:       syncSvc,
		SnapshotService:   snapshotSvc,
		Roller:            dice.New(&dice.Config{}),
		Logger:            logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create discord bot")
	}

	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start discord bot")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping bot")
	}

	logger.Info().Msg("bot has been shut down")
}
