package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"betreport/bot/common"
	"betreport/events"
	"betreport/models"
	"betreport/service"

	"github.com/bwmarrin/discordgo"
)

// BuildSummaryEmbed creates the embed with the three totals
func BuildSummaryEmbed(report *models.Report, filename, promotionURL string, expiresAt time.Time) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**Period:** %s\n**Rounds:** %d\n**Change window until:** %s",
		service.FormatWindow(report.Window), report.RoundCount(), common.FormatDiscordTimestamp(expiresAt, "t"))

	return &discordgo.MessageEmbed{
		Title:       "📊 Wager Report",
		Description: description,
		Color:       common.ColorPrimary,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Total Wagered", Value: service.FormatCurrency(report.Summary.TotalOverall), Inline: true},
			{Name: "✅ Eligible", Value: service.FormatCurrency(report.Summary.TotalEligible), Inline: true},
			{Name: "❌ Non-Eligible", Value: service.FormatCurrency(report.Summary.TotalNonEligible), Inline: true},
			{Name: clientsLabel(report), Value: common.Truncate(clientsValue(report), common.EmbedFieldValueLimit)},
			{Name: "📜 Eligible games", Value: fmt.Sprintf("[Promotion rules](%s)", promotionURL)},
		},
		Image: &discordgo.MessageEmbedImage{
			URL: "attachment://" + SummaryCardFilename,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: common.Truncate(filename, 128),
		},
	}
}

func clientsLabel(report *models.Report) string {
	if len(report.Clients) > 1 {
		return "👥 Clients"
	}
	return "👤 Client"
}

func clientsValue(report *models.Report) string {
	if client, ok := report.SingleClient(); ok {
		return client
	}
	if len(report.Clients) == 0 {
		return "-"
	}
	return strings.Join(report.Clients, ", ")
}

// tableDescriptionLimit keeps both tables and the summary under the 6000 characters Discord allows per message
const tableDescriptionLimit = 2000

// BuildTableEmbed renders one aggregate table as a code block, cut to fit Discord's limits
func BuildTableEmbed(title string, rows []models.AggregateRow, color int) *discordgo.MessageEmbed {
	lines := strings.Split(strings.TrimRight(service.RenderTable(rows), "\n"), "\n")
	block, _ := common.FitLines(lines, tableDescriptionLimit, func(omitted int) string {
		return fmt.Sprintf("+%d more games", omitted)
	})

	return &discordgo.MessageEmbed{
		Title:       common.Truncate(fmt.Sprintf("%s (%d)", title, len(rows)), common.EmbedTitleLimit),
		Description: block,
		Color:       color,
	}
}

// BuildEmptyResultEmbed tells the user the window matched no wagers
func BuildEmptyResultEmbed(message string, window models.TimeWindow) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚠️ Empty Report",
		Description: fmt.Sprintf("%s\n**Period:** %s", message, service.FormatWindow(window)),
		Color:       common.ColorWarning,
	}
}

// BuildEligibleGamesEmbed lists the games that count towards the promotion
func BuildEligibleGamesEmbed(list *service.EligibilityList, promotionURL string) *discordgo.MessageEmbed {
	names := list.Names()
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "• " + name
	}
	block, _ := common.FitLines(lines, common.EmbedDescriptionLimit, func(omitted int) string {
		return fmt.Sprintf("+%d more", omitted)
	})

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎰 Eligible Games (%d)", list.Len()),
		URL:         promotionURL,
		Description: block,
		Color:       common.ColorInfo,
	}
}

// userMessage turns a pipeline error into the text shown to the user.
// The bool is false for errors that are informational rather than failures.
func userMessage(err error) (string, bool) {
	var schemaErr *service.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("The CSV does not contain all required columns: %s", strings.Join(schemaErr.Missing, ", ")), true
	case errors.Is(err, service.ErrInvalidTimeFormat):
		var timeErr *service.InvalidTimeFormatError
		if errors.As(err, &timeErr) && strings.HasSuffix(timeErr.Field, "date") {
			return "Invalid date format. Use YYYY-MM-DD", true
		}
		return "Invalid time format. Use HH:MM", true
	case errors.Is(err, service.ErrEmptyResult):
		return "No wagers found for the selected period.", false
	case errors.Is(err, service.ErrLedgerTooLarge):
		return "The CSV has too many rows to process.", true
	case errors.Is(err, ErrUnsupportedAttachment):
		return "Please upload a .csv file.", true
	case errors.Is(err, ErrAttachmentTooLarge):
		return "The uploaded file is too large.", true
	case errors.Is(err, ErrMissingAttachment):
		return "Please attach the ledger CSV.", true
	default:
		return "Unable to generate the report. Please try again.", true
	}
}

// rejectReason maps a pipeline error onto a ReportRejectedEvent reason
func rejectReason(err error) string {
	switch {
	case errors.Is(err, service.ErrSchema):
		return events.RejectReasonSchema
	case errors.Is(err, service.ErrInvalidTimeFormat):
		return events.RejectReasonInvalidTime
	case errors.Is(err, service.ErrEmptyResult):
		return events.RejectReasonEmptyResult
	case errors.Is(err, ErrUnsupportedAttachment), errors.Is(err, ErrAttachmentTooLarge),
		errors.Is(err, ErrMissingAttachment), errors.Is(err, service.ErrLedgerTooLarge):
		return events.RejectReasonUpload
	default:
		return events.RejectReasonInternal
	}
}
