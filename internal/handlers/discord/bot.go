package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lootroll/internal/dice"
	attendanceService "lootroll/internal/services/attendance"
	queryService "lootroll/internal/services/query"
	sessionService "lootroll/internal/services/session"
	settingsService "lootroll/internal/services/settings"
	snapshotService "lootroll/internal/services/snapshot"
	statsService "lootroll/internal/services/stats"
	syncService "lootroll/internal/services/sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Button IDs
const (
	// ButtonStartReroll opens a tie-break round for the currently tied
	// participants
	ButtonStartReroll = "start_reroll"

	// ButtonFinalizeSession resolves the active session
	ButtonFinalizeSession = "finalize_session"
)

// Peer record line prefixes. The announce sink posts these machine lines
// after an announcement; peer bots watching the channel merge them.
const (
	rollRecordLinePrefix       = "lootroll:roll "
	attendanceRecordLinePrefix = "lootroll:attendance "
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID

	sessionService    sessionService.Service
	attendanceService attendanceService.Service
	statsService      statsService.Service
	queryService      queryService.Service
	settingsService   settingsService.Service
	syncService       syncService.Service
	snapshotService   snapshotService.Service
	roller            *dice.Roller

	logger zerolog.Logger
	config *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is an existing Discord session. Callers that need the
	// session before the bot exists (the announce sink does) create it
	// first and share it here; otherwise one is created from Token.
	Session *discordgo.Session

	// Discord bot token. Ignored when Session is set.
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Core services
	SessionService    sessionService.Service
	AttendanceService attendanceService.Service
	StatsService      statsService.Service
	QueryService      queryService.Service
	SettingsService   settingsService.Service
	SyncService       syncService.Service
	SnapshotService   snapshotService.Service

	// Roller backs the /roll me subcommand
	Roller *dice.Roller

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil && cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.AttendanceService == nil {
		return nil, errors.New("attendance service cannot be nil")
	}

	if cfg.StatsService == nil {
		return nil, errors.New("stats service cannot be nil")
	}

	if cfg.QueryService == nil {
		return nil, errors.New("query service cannot be nil")
	}

	if cfg.SettingsService == nil {
		return nil, errors.New("settings service cannot be nil")
	}

	if cfg.SyncService == nil {
		return nil, errors.New("sync service cannot be nil")
	}

	if cfg.SnapshotService == nil {
		return nil, errors.New("snapshot service cannot be nil")
	}

	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	session := cfg.Session
	if session == nil {
		var err error
		session, err = discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
	}

	session.Identify.Intents |= discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		session:           session,
		commands:          make(map[string]CommandHandler),
		commandIDs:        make(map[string]string),
		sessionService:    cfg.SessionService,
		attendanceService: cfg.AttendanceService,
		statsService:      cfg.StatsService,
		queryService:      cfg.QueryService,
		settingsService:   cfg.SettingsService,
		syncService:       cfg.SyncService,
		snapshotService:   cfg.SnapshotService,
		roller:            cfg.Roller,
		logger:            cfg.Logger,
		config:            cfg,
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessage)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewRollCommand(b.sessionService, b.settingsService, b.roller),
		NewAttendanceCommand(b.attendanceService),
		NewLootCommand(b.queryService, b.statsService, b.attendanceService, b.snapshotService),
		NewConfigCommand(b.settingsService),
	}
	for _, cmd := range handlers {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.logger.Info().Msg("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Msg("failed to delete command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().Str("command", cmd.GetName()).Str("id", createdCmd.ID).Msg("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Err(err).
					Str("command", i.ApplicationCommandData().Name).
					Msg("command handling failed")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error().Err(err).Msg("component handling failed")
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	switch customID := i.MessageComponentData().CustomID; customID {
	case ButtonStartReroll:
		return b.handleStartRerollButton(s, i)
	case ButtonFinalizeSession:
		return b.handleFinalizeButton(s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleStartRerollButton opens a tie-break round for whoever is currently
// tied at the top of the round
func (b *Bot) handleStartRerollButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	highest, err := b.sessionService.GetHighestSubmitters(ctx, &sessionService.GetHighestSubmittersInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if len(highest.Submissions) < 2 {
		return RespondWithError(s, i, "There is no tie to break.")
	}

	tied := make([]string, 0, len(highest.Submissions))
	for _, sub := range highest.Submissions {
		tied = append(tied, sub.Participant)
	}

	rerollOutput, err := b.sessionService.StartReroll(ctx, &sessionService.StartRerollInput{
		GuildID:      i.GuildID,
		Participants: tied,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderRerollStarted(rerollOutput.Round, tied))
}

// handleFinalizeButton resolves the active session
func (b *Bot) handleFinalizeButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := b.sessionService.Finalize(ctx, &sessionService.FinalizeInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return b.respondFinalize(s, i, output)
}

// respondFinalize renders a finalize outcome, attaching a reroll button on
// ties when the auto-reroll prompt is enabled
func (b *Bot) respondFinalize(s *discordgo.Session, i *discordgo.InteractionCreate, output *sessionService.FinalizeOutput) error {
	if output.Outcome == sessionService.FinalizeOutcomeTie {
		prompt, err := b.settingsService.Get(context.Background(), &settingsService.GetInput{
			GuildID: i.GuildID,
			Key:     settingsService.KeyAutoRerollPrompt,
		})
		if err == nil && prompt.Value == "true" {
			return RespondWithEmbedAndButtons(s, i, renderFinalizeOutcome(output), []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Reroll",
					Style:    discordgo.PrimaryButton,
					CustomID: ButtonStartReroll,
					Emoji: &discordgo.ComponentEmoji{
						Name: "🎲",
					},
				},
			})
		}
	}

	return RespondWithEmbed(s, i, renderFinalizeOutcome(output))
}

// handleMessage watches guild messages for relayed roll lines and for peer
// record lines
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	if m.GuildID == "" {
		return
	}

	content := strings.TrimSpace(m.Content)

	switch {
	case strings.HasPrefix(content, rollRecordLinePrefix):
		b.mergePeerRollRecord(s, m, strings.TrimPrefix(content, rollRecordLinePrefix))
	case strings.HasPrefix(content, attendanceRecordLinePrefix):
		b.mergePeerAttendanceRecord(s, m, strings.TrimPrefix(content, attendanceRecordLinePrefix))
	default:
		b.recordChatRoll(s, m, content)
	}
}

// recordChatRoll feeds a relayed roll line into the session state machine
func (b *Bot) recordChatRoll(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	roll, ok := ParseChatRoll(content)
	if !ok {
		return
	}

	_, err := b.sessionService.RecordSubmission(context.Background(), &sessionService.RecordSubmissionInput{
		GuildID:     m.GuildID,
		Participant: roll.Participant,
		Value:       roll.Value,
		Min:         roll.Min,
		Max:         roll.Max,
	})
	if err != nil {
		// Rolls outside a session are ordinary chatter
		if errors.Is(err, sessionService.ErrNoActiveSession) {
			return
		}
		b.react(s, m, "❌")
		b.logger.Debug().Err(err).Str("participant", roll.Participant).Msg("submission rejected")
		return
	}

	b.react(s, m, "🎲")
}

// mergePeerRollRecord merges a record line another bot posted
func (b *Bot) mergePeerRollRecord(s *discordgo.Session, m *discordgo.MessageCreate, payload string) {
	record, err := syncService.ParseRollRecord([]byte(payload))
	if err != nil {
		b.logger.Warn().Err(err).Str("author", m.Author.ID).Msg("rejected peer roll record")
		return
	}

	output, err := b.syncService.MergeRollRecord(context.Background(), &syncService.MergeRollRecordInput{
		Record: record,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to merge peer roll record")
		return
	}

	if output.Merged {
		b.react(s, m, "🔁")
	}
}

// mergePeerAttendanceRecord merges an attendance line another bot posted
func (b *Bot) mergePeerAttendanceRecord(s *discordgo.Session, m *discordgo.MessageCreate, payload string) {
	record, err := syncService.ParseAttendanceRecord([]byte(payload))
	if err != nil {
		b.logger.Warn().Err(err).Str("author", m.Author.ID).Msg("rejected peer attendance record")
		return
	}

	output, err := b.syncService.MergeAttendanceRecord(context.Background(), &syncService.MergeAttendanceRecordInput{
		Record: record,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to merge peer attendance record")
		return
	}

	if output.Merged {
		b.react(s, m, "🔁")
	}
}

func (b *Bot) react(s *discordgo.Session, m *discordgo.MessageCreate, emoji string) {
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		b.logger.Debug().Err(err).Msg("failed to add reaction")
	}
}
