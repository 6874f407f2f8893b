package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	attendanceService "lootroll/internal/services/attendance"
	queryService "lootroll/internal/services/query"
	snapshotService "lootroll/internal/services/snapshot"
	statsService "lootroll/internal/services/stats"

	"github.com/bwmarrin/discordgo"
)

// LootCommand handles the /loot command: the read-only reporting surface
type LootCommand struct {
	BaseCommand
	queryService      queryService.Service
	statsService      statsService.Service
	attendanceService attendanceService.Service
	snapshotService   snapshotService.Service
}

// NewLootCommand creates a new loot command handler
func NewLootCommand(querySvc queryService.Service, statsSvc statsService.Service, attendanceSvc attendanceService.Service, snapshotSvc snapshotService.Service) *LootCommand {
	return &LootCommand{
		BaseCommand: BaseCommand{
			Name:        "loot",
			Description: "Loot history and statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show a member's roll stats",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "member",
							Description: "Member to look up",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the priority-scored ranking",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "List finalized rolls",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "winner",
							Description: "Only rolls won by this member",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Only items containing this text",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "days",
							Description: "Only rolls from the last N days",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "raids",
					Description: "List recorded attendance events",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "export",
					Description: "Export this guild's state as JSON",
				},
			},
		},
		queryService:      querySvc,
		statsService:      statsSvc,
		attendanceService: attendanceSvc,
		snapshotService:   snapshotSvc,
	}
}

// Handle processes a Discord interaction for the loot command
func (c *LootCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	sub := data.Options[0]

	switch sub.Name {
	case "stats":
		return c.handleStats(s, i, sub.Options[0].UserValue(s))
	case "leaderboard":
		return c.handleLeaderboard(s, i)
	case "history":
		return c.handleHistory(s, i, sub.Options)
	case "raids":
		return c.handleRaids(s, i)
	case "export":
		return c.handleExport(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *LootCommand) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate, member *discordgo.User) error {
	// Ledgers are keyed by user ID; the username is display only
	output, err := c.statsService.GetStats(context.Background(), &statsService.GetStatsInput{
		GuildID:     i.GuildID,
		Participant: member.ID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if output.Stats == nil {
		return RespondWithEphemeralMessage(s, i, "No recorded rolls for that member.")
	}

	return RespondWithEmbed(s, i, renderStats(member.Username, output.Stats))
}

func (c *LootCommand) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.queryService.GetLeaderboard(context.Background(), &queryService.GetLeaderboardInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderLeaderboard(output.Entries))
}

func (c *LootCommand) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, sub []*discordgo.ApplicationCommandInteractionDataOption) error {
	filters := &queryService.HistoryFilters{}
	for _, opt := range sub {
		switch opt.Name {
		case "winner":
			filters.Winner = opt.UserValue(s).ID
		case "item":
			filters.Item = opt.StringValue()
		case "days":
			since := time.Now().AddDate(0, 0, -int(opt.IntValue()))
			filters.StartDate = &since
		}
	}

	output, err := c.queryService.GetHistory(context.Background(), &queryService.GetHistoryInput{
		GuildID: i.GuildID,
		Filters: filters,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithEmbed(s, i, renderHistory(output.Records))
}

func (c *LootCommand) handleRaids(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.attendanceService.GetHistory(context.Background(), &attendanceService.GetHistoryInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	if len(output.Records) == 0 {
		return RespondWithEphemeralMessage(s, i, "No recorded attendance events yet.")
	}

	const maxShown = 15

	var sb strings.Builder
	for idx, record := range output.Records {
		if idx == maxShown {
			fmt.Fprintf(&sb, "…and %d more\n", len(output.Records)-maxShown)
			break
		}
		fmt.Fprintf(&sb, "**%s** (%s) - %d attendee(s)\n",
			record.Name, record.Date, len(record.Attendees))
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Attendance history",
		Description: sb.String(),
		Color:       colorNeutral,
	})
}

func (c *LootCommand) handleExport(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.snapshotService.Export(context.Background(), &snapshotService.ExportInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	data, err := json.MarshalIndent(output.Snapshot, "", "  ")
	if err != nil {
		return RespondWithError(s, i, userFacing(err))
	}

	return RespondWithFile(s, i, "Guild state export:", &discordgo.File{
		Name:        fmt.Sprintf("lootroll-%s.json", time.Now().Format("2006-01-02")),
		ContentType: "application/json",
		Reader:      bytes.NewReader(data),
	})
}
