package discord

import (
	"context"
	"errors"
	"fmt"

	attendanceService "lootroll/internal/services/attendance"

	"github.com/bwmarrin/discordgo"
)

// AttendanceCommand handles the /attendance command
type AttendanceCommand struct {
	BaseCommand
	attendanceService attendanceService.Service
}

// NewAttendanceCommand creates a new attendance command handler
func NewAttendanceCommand(attendanceSvc attendanceService.Service) *AttendanceCommand {
	memberOption := func(desc string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: desc,
				Required:    true,
			},
		}
	}

	return &AttendanceCommand{
		BaseCommand: BaseCommand{
			Name:        "attendance",
			Description: "Raid attendance commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open an attendance event",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Event name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a member to the roster",
					Options:     memberOption("Member to add"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a member from the roster",
					Options:     memberOption("Member to remove"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the open event's roster",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "Close the event and credit the roster",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Discard the open event",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rate",
					Description: "Show a member's attendance rate",
					Options:     memberOption("Member to look up"),
				},
			},
		},
		attendanceService: attendanceSvc,
	}
}

// Handle processes a Discord interaction for the attendance command
func (c *AttendanceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := interactionUser(i)
	sub := data.Options[0]

	switch sub.Name {
	case "start":
		return c.handleStart(s, i, sub.Options[0].StringValue(), userID)
	case "add":
		return c.handleAdd(s, i, sub.Options[0].UserValue(s).ID)
	case "remove":
		return c.handleRemove(s, i, sub.Options[0].UserValue(s).ID)
	case "status":
		return c.handleStatus(s, i)
	case "end":
		return c.handleEnd(s, i)
	case "cancel":
		return c.handleCancel(s, i)
	case "rate":
		return c.handleRate(s, i, sub.Options[0].UserValue(s))
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *AttendanceCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, name, userID string) error {
	output, err := c.attendanceService.StartEvent(context.Background(), &attendanceService.StartEventInput{
		GuildID:   i.GuildID,
		Name:      name,
		StartedBy: userID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderAttendanceEvent(output.Event))
}

func (c *AttendanceCommand) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, member string) error {
	output, err := c.attendanceService.AddAttendee(context.Background(), &attendanceService.AddAttendeeInput{
		GuildID:     i.GuildID,
		Participant: member,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderAttendanceEvent(output.Event))
}

func (c *AttendanceCommand) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, member string) error {
	output, err := c.attendanceService.RemoveAttendee(context.Background(), &attendanceService.RemoveAttendeeInput{
		GuildID:     i.GuildID,
		Participant: member,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderAttendanceEvent(output.Event))
}

func (c *AttendanceCommand) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.attendanceService.GetActiveEvent(context.Background(), &attendanceService.GetActiveEventInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if output.Event == nil {
		return RespondWithEphemeralMessage(s, i, "There is no running attendance event.")
	}

	return RespondWithEmbed(s, i, renderAttendanceEvent(output.Event))
}

func (c *AttendanceCommand) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.attendanceService.EndEvent(context.Background(), &attendanceService.EndEventInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Recorded %s", output.Record.Name),
		Description: fmt.Sprintf("%d attendee(s) credited for %s.",
			len(output.Record.Attendees), output.Record.Date),
		Color: colorSuccess,
	})
}

func (c *AttendanceCommand) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.attendanceService.Cancel(context.Background(), &attendanceService.CancelInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithMessage(s, i,
		fmt.Sprintf("Cancelled **%s**. Nobody was credited.", output.Event.Name))
}

func (c *AttendanceCommand) handleRate(s *discordgo.Session, i *discordgo.InteractionCreate, member *discordgo.User) error {
	// Attendance is keyed by user ID, matching the stats ledger
	output, err := c.attendanceService.GetAttendanceRate(context.Background(), &attendanceService.GetAttendanceRateInput{
		GuildID:     i.GuildID,
		Participant: member.ID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderAttendanceRate(member.Username, output))
}
