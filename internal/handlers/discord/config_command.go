package discord

import (
	"context"
	"errors"
	"fmt"

	settingsService "lootroll/internal/services/settings"

	"github.com/bwmarrin/discordgo"
)

// settingsOrder fixes the display order of recognized keys
var settingsOrder = []string{
	settingsService.KeyAnnounceOnWin,
	settingsService.KeyAnnounceChannel,
	settingsService.KeyAutoRerollPrompt,
	settingsService.KeyAttendancePriorityWeight,
	settingsService.KeyMinEventsForPriority,
}

// ConfigCommand handles the /config command
type ConfigCommand struct {
	BaseCommand
	settingsService settingsService.Service
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(settingsSvc settingsService.Service) *ConfigCommand {
	keyChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(settingsOrder))
	for _, key := range settingsOrder {
		keyChoices = append(keyChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  key,
			Value: key,
		})
	}

	return &ConfigCommand{
		BaseCommand: BaseCommand{
			Name:        "config",
			Description: "Bot configuration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show every setting's effective value",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "get",
					Description: "Show one setting",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Setting key",
							Required:    true,
							Choices:     keyChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Change one setting",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Setting key",
							Required:    true,
							Choices:     keyChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "value",
							Description: "New value",
							Required:    true,
						},
					},
				},
			},
		},
		settingsService: settingsSvc,
	}
}

// Handle processes a Discord interaction for the config command
func (c *ConfigCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	sub := data.Options[0]

	switch sub.Name {
	case "list":
		return c.handleList(s, i)
	case "get":
		return c.handleGet(s, i, sub.Options[0].StringValue())
	case "set":
		return c.handleSet(s, i, sub.Options[0].StringValue(), sub.Options[1].StringValue())
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *ConfigCommand) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.settingsService.GetAll(context.Background(), &settingsService.GetAllInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderSettings(output.Values, settingsOrder))
}

func (c *ConfigCommand) handleGet(s *discordgo.Session, i *discordgo.InteractionCreate, key string) error {
	output, err := c.settingsService.Get(context.Background(), &settingsService.GetInput{
		GuildID: i.GuildID,
		Key:     key,
	})
	if err != nil {
		if errors.Is(err, settingsService.ErrUnknownKey) {
			return RespondWithError(s, i, fmt.Sprintf("Unknown setting `%s`.", key))
		}
		return RespondWithError(s, i, userFacing(err))
	}

	value := output.Value
	if value == "" {
		value = "(unset)"
	}
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("`%s` = %s", key, value))
}

func (c *ConfigCommand) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, key, value string) error {
	_, err := c.settingsService.Set(context.Background(), &settingsService.SetInput{
		GuildID: i.GuildID,
		Key:     key,
		Value:   value,
	})
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrUnknownKey):
			return RespondWithError(s, i, fmt.Sprintf("Unknown setting `%s`. Settings are never created on the fly.", key))
		case errors.Is(err, settingsService.ErrInvalidValue):
			return RespondWithError(s, i, fmt.Sprintf("`%s` does not accept `%s`.", key, value))
		default:
			return RespondWithError(s, i, userFacing(err))
		}
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Set `%s` to `%s`.", key, value))
}
