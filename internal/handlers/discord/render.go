package discord

import (
	"errors"
	"fmt"
	"strings"

	"lootroll/internal/models"
	attendanceService "lootroll/internal/services/attendance"
	queryService "lootroll/internal/services/query"
	sessionService "lootroll/internal/services/session"

	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorSuccess = 0x2ecc71
	colorNeutral = 0x3498db
	colorWarning = 0xf1c40f
	colorError   = 0xe74c3c
)

// userFacing maps known service errors to short user text. Unknown errors
// get a generic line; the real error goes to the log, not the channel.
func userFacing(err error) string {
	switch {
	case errors.Is(err, sessionService.ErrSessionAlreadyActive):
		return "A roll session is already open. Finalize or cancel it first."
	case errors.Is(err, sessionService.ErrNoActiveSession):
		return "There is no open roll session."
	case errors.Is(err, sessionService.ErrInvalidRange):
		return "Only standard 1-100 rolls count."
	case errors.Is(err, sessionService.ErrNotEligible):
		return "That participant is not eligible for the current round."
	case errors.Is(err, sessionService.ErrDuplicateSubmission):
		return "That participant already rolled this round."
	case errors.Is(err, attendanceService.ErrEventAlreadyActive):
		return "An attendance event is already running. End or cancel it first."
	case errors.Is(err, attendanceService.ErrNoActiveEvent):
		return "There is no running attendance event."
	case errors.Is(err, attendanceService.ErrDuplicateAttendee):
		return "That member is already on the roster."
	case errors.Is(err, attendanceService.ErrAttendeeNotFound):
		return "That member is not on the roster."
	default:
		return "Something went wrong. Check the bot logs."
	}
}

// displayParticipant renders a stored participant key for chat. Ledger
// keys are Discord user IDs, shown as mentions; chat-parsed character
// names pass through as-is.
func displayParticipant(participant string) string {
	if participant == "" {
		return participant
	}
	for _, r := range participant {
		if r < '0' || r > '9' {
			return participant
		}
	}
	return fmt.Sprintf("<@%s>", participant)
}

func displayParticipants(participants []string) []string {
	shown := make([]string, 0, len(participants))
	for _, p := range participants {
		shown = append(shown, displayParticipant(p))
	}
	return shown
}

// renderSessionStatus renders the active session snapshot
func renderSessionStatus(session *models.RollSession) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Started by",
			Value:  fmt.Sprintf("<@%s>", session.StartedBy),
			Inline: true,
		},
		{
			Name:   "Round",
			Value:  fmt.Sprintf("%d", session.RerollRound),
			Inline: true,
		},
		{
			Name:   "State",
			Value:  string(session.State),
			Inline: true,
		},
	}

	current := session.SubmissionsAtRound(session.RerollRound)
	if len(current) > 0 {
		var sb strings.Builder
		for _, sub := range current {
			fmt.Fprintf(&sb, "%s - %d\n", displayParticipant(sub.Participant), sub.Value)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Rolls this round (%d)", len(current)),
			Value: sb.String(),
		})
	}

	if len(session.Eligible) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Eligible",
			Value: strings.Join(displayParticipants(session.Eligible), ", "),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Rolling for %s", session.Item),
		Color:  colorNeutral,
		Fields: fields,
	}
}

// renderFinalizeOutcome renders a winner, a tie, or an empty session
func renderFinalizeOutcome(output *sessionService.FinalizeOutput) *discordgo.MessageEmbed {
	switch output.Outcome {
	case sessionService.FinalizeOutcomeWinner:
		return &discordgo.MessageEmbed{
			Title: fmt.Sprintf("%s has a winner!", output.Record.Item),
			Description: fmt.Sprintf("%s takes it with **%d** after %d tie-break round(s).",
				displayParticipant(output.Winner.Participant),
				output.Record.WinningValue, output.Record.RerollRounds),
			Color: colorSuccess,
		}
	case sessionService.FinalizeOutcomeTie:
		names := make([]string, 0, len(output.Tied))
		for _, sub := range output.Tied {
			names = append(names, displayParticipant(sub.Participant))
		}
		return &discordgo.MessageEmbed{
			Title: "Tie!",
			Description: fmt.Sprintf("%s are tied at **%d**. A reroll is needed.",
				strings.Join(names, ", "), output.Tied[0].Value),
			Color: colorWarning,
		}
	default:
		return &discordgo.MessageEmbed{
			Title:       "Session closed",
			Description: "Nobody rolled, so nothing was recorded.",
			Color:       colorNeutral,
		}
	}
}

// renderRerollStarted announces a new tie-break round
func renderRerollStarted(round int, participants []string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Tie-break round %d", round),
		Description: fmt.Sprintf("Only %s may roll this round. Roll 1-100!",
			strings.Join(displayParticipants(participants), ", ")),
		Color: colorWarning,
	}
}

// renderStats renders one participant's counters. The display name comes
// from the interaction, not the ledger key.
func renderStats(displayName string, stats *models.ParticipantStats) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Roll stats for %s", displayName),
		Color: colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wins", Value: fmt.Sprintf("%d", stats.Wins), Inline: true},
			{Name: "Losses", Value: fmt.Sprintf("%d", stats.Losses), Inline: true},
			{Name: "Win rate", Value: fmt.Sprintf("%.1f%%", stats.WinRate()), Inline: true},
			{Name: "Rolls", Value: fmt.Sprintf("%d", stats.TotalSubmissions), Inline: true},
			{Name: "Average", Value: fmt.Sprintf("%.1f", stats.AverageValue()), Inline: true},
			{Name: "High / Low", Value: fmt.Sprintf("%d / %d", stats.HighestValue, stats.LowestValue), Inline: true},
		},
	}
}

// renderLeaderboard renders the priority ranking
func renderLeaderboard(entries []*queryService.LeaderboardEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Leaderboard",
			Description: "No finalized sessions yet.",
			Color:       colorNeutral,
		}
	}

	var sb strings.Builder
	for rank, entry := range entries {
		fmt.Fprintf(&sb, "**%d.** %s - priority %.1f (wins %d, attendance %.0f%%)\n",
			rank+1, displayParticipant(entry.Participant), entry.Priority, entry.Wins, entry.AttendanceRate)
	}

	return &discordgo.MessageEmbed{
		Title:       "Leaderboard",
		Description: sb.String(),
		Color:       colorNeutral,
	}
}

// renderHistory renders finalized roll records, most recent first
func renderHistory(records []*models.RollRecord) *discordgo.MessageEmbed {
	if len(records) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Roll history",
			Description: "No finalized sessions match.",
			Color:       colorNeutral,
		}
	}

	const maxShown = 15

	var sb strings.Builder
	for idx, record := range records {
		if idx == maxShown {
			fmt.Fprintf(&sb, "…and %d more\n", len(records)-maxShown)
			break
		}
		fmt.Fprintf(&sb, "**%s** - %s with %d (%s)\n",
			record.Item, displayParticipant(record.Winner), record.WinningValue,
			record.EndTime.Format("2006-01-02"))
	}

	return &discordgo.MessageEmbed{
		Title:       "Roll history",
		Description: sb.String(),
		Color:       colorNeutral,
	}
}

// renderAttendanceEvent renders the active roster
func renderAttendanceEvent(event *models.AttendanceEvent) *discordgo.MessageEmbed {
	roster := "Nobody yet."
	if len(event.Attendees) > 0 {
		roster = strings.Join(displayParticipants(event.Attendees), "\n")
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Attendance: %s (%s)", event.Name, event.Date),
		Color: colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Roster (%d)", len(event.Attendees)),
				Value: roster,
			},
		},
	}
}

// renderAttendanceRate renders one participant's attendance share
func renderAttendanceRate(participant string, rate *attendanceService.GetAttendanceRateOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Attendance for %s", participant),
		Description: fmt.Sprintf("**%.1f%%** - %d of %d recorded events.",
			rate.Rate, rate.EventsAttended, rate.EventsRecorded),
		Color: colorNeutral,
	}
}

// renderSettings renders every recognized key's effective value
func renderSettings(values map[string]string, order []string) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, key := range order {
		value := values[key]
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(&sb, "`%s` = %s\n", key, value)
	}

	return &discordgo.MessageEmbed{
		Title:       "Configuration",
		Description: sb.String(),
		Color:       colorNeutral,
	}
}
