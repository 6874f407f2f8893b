package discord

import (
	"context"
	"errors"
	"fmt"

	"lootroll/internal/dice"
	sessionService "lootroll/internal/services/session"
	settingsService "lootroll/internal/services/settings"

	"github.com/bwmarrin/discordgo"
)

// RollCommand handles the /roll command
type RollCommand struct {
	BaseCommand
	sessionService  sessionService.Service
	settingsService settingsService.Service
	roller          *dice.Roller
}

// NewRollCommand creates a new roll command handler
func NewRollCommand(sessionSvc sessionService.Service, settingsSvc settingsService.Service, roller *dice.Roller) *RollCommand {
	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Loot roll session commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open a roll session for an item",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "The contested item",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the open session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "finalize",
					Description: "Resolve the open session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Discard the open session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "me",
					Description: "Roll 1-100 yourself",
				},
			},
		},
		sessionService:  sessionSvc,
		settingsService: settingsSvc,
		roller:          roller,
	}
}

// Handle processes a Discord interaction for the roll command
func (c *RollCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := interactionUser(i)

	switch data.Options[0].Name {
	case "start":
		item := data.Options[0].Options[0].StringValue()
		return c.handleStart(s, i, item, userID)
	case "status":
		return c.handleStatus(s, i)
	case "finalize":
		return c.handleFinalize(s, i)
	case "cancel":
		return c.handleCancel(s, i)
	case "me":
		return c.handleRollMe(s, i, userID)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart opens a roll session
func (c *RollCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, item, userID string) error {
	ctx := context.Background()

	output, err := c.sessionService.Start(ctx, &sessionService.StartInput{
		GuildID:   i.GuildID,
		Item:      item,
		StartedBy: userID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Rolling for %s", output.Session.Item),
		Description: "Roll 1-100 now. Paste your in-game roll line or use `/roll me`.",
		Color:       colorSuccess,
	})
}

// handleStatus shows the open session, if any
func (c *RollCommand) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := c.sessionService.GetActiveSession(ctx, &sessionService.GetActiveSessionInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if output.Session == nil {
		return RespondWithEphemeralMessage(s, i, "There is no open roll session.")
	}

	return RespondWithEmbed(s, i, renderSessionStatus(output.Session))
}

// handleFinalize resolves the open session
func (c *RollCommand) handleFinalize(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := c.sessionService.Finalize(ctx, &sessionService.FinalizeInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if output.Outcome == sessionService.FinalizeOutcomeTie {
		prompt, err := c.settingsService.Get(ctx, &settingsService.GetInput{
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

// handleCancel discards the open session
func (c *RollCommand) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := c.sessionService.Cancel(ctx, &sessionService.CancelInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithMessage(s, i,
		fmt.Sprintf("Cancelled the roll for **%s**. Nothing was recorded.", output.Session.Item))
}

// handleRollMe rolls on the invoker's behalf and feeds it into the session.
// The submission is keyed by the invoker's user ID, the same identifier
// space the stats and attendance ledgers use.
func (c *RollCommand) handleRollMe(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()
	value := c.roller.Roll()

	_, err := c.sessionService.RecordSubmission(ctx, &sessionService.RecordSubmissionInput{
		GuildID:     i.GuildID,
		Participant: userID,
		Value:       value,
		Min:         1,
		Max:         100,
	})
	if err != nil {
		// The roll still shows even when no session counts it
		if errors.Is(err, sessionService.ErrNoActiveSession) {
			return RespondWithMessage(s, i, fmt.Sprintf("<@%s> rolls %d (1-100)", userID, value))
		}
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithMessage(s, i,
		fmt.Sprintf("<@%s> rolls **%d** (1-100) - counted!", userID, value))
}
