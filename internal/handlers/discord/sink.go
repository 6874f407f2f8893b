package discord

import (
	"context"
	"encoding/json"
	"fmt"

	"lootroll/internal/models"
	settingsService "lootroll/internal/services/settings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// AnnounceSink posts finalized records to the configured announce channel.
// It implements the record sink consumed by the session and attendance
// services. Publishing is best effort; the record is already durable when
// the sink sees it.
type AnnounceSink struct {
	session         *discordgo.Session
	settingsService settingsService.Service
	logger          zerolog.Logger
}

// AnnounceSinkConfig holds configuration for the announce sink
type AnnounceSinkConfig struct {
	Session         *discordgo.Session
	SettingsService settingsService.Service
	Logger          zerolog.Logger
}

// NewAnnounceSink creates a new announce sink
func NewAnnounceSink(cfg *AnnounceSinkConfig) (*AnnounceSink, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}

	if cfg.SettingsService == nil {
		return nil, fmt.Errorf("settings service cannot be nil")
	}

	return &AnnounceSink{
		session:         cfg.Session,
		settingsService: cfg.SettingsService,
		logger:          cfg.Logger,
	}, nil
}

// PublishRollRecord announces a finalized roll, then posts the machine
// line peer bots merge from
func (a *AnnounceSink) PublishRollRecord(ctx context.Context, record *models.RollRecord) error {
	channelID, err := a.announceChannel(ctx, record.GuildID)
	if err != nil || channelID == "" {
		return err
	}

	enabled, err := a.settingsService.Get(ctx, &settingsService.GetInput{
		GuildID: record.GuildID,
		Key:     settingsService.KeyAnnounceOnWin,
	})
	if err != nil {
		return fmt.Errorf("failed to read announce setting: %w", err)
	}

	if enabled.Value == "true" {
		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("%s has a winner!", record.Item),
			Description: fmt.Sprintf("%s takes it with **%d** after %d tie-break round(s).",
				displayParticipant(record.Winner), record.WinningValue, record.RerollRounds),
			Color: colorSuccess,
		}
		if _, err := a.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
			a.logger.Warn().Err(err).Str("channel", channelID).Msg("failed to announce roll record")
		}
	}

	return a.postRecordLine(channelID, rollRecordLinePrefix, record)
}

// PublishAttendanceRecord posts an ended event's machine line for peers
func (a *AnnounceSink) PublishAttendanceRecord(ctx context.Context, record *models.AttendanceRecord) error {
	channelID, err := a.announceChannel(ctx, record.GuildID)
	if err != nil || channelID == "" {
		return err
	}

	return a.postRecordLine(channelID, attendanceRecordLinePrefix, record)
}

func (a *AnnounceSink) announceChannel(ctx context.Context, guildID string) (string, error) {
	output, err := a.settingsService.Get(ctx, &settingsService.GetInput{
		GuildID: guildID,
		Key:     settingsService.KeyAnnounceChannel,
	})
	if err != nil {
		return "", fmt.Errorf("failed to read announce channel: %w", err)
	}
	return output.Value, nil
}

func (a *AnnounceSink) postRecordLine(channelID, prefix string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err := a.session.ChannelMessageSend(channelID, prefix+string(data)); err != nil {
		a.logger.Warn().Err(err).Str("channel", channelID).Msg("failed to post record line")
		return err
	}

	return nil
}
