package report

import (
	"strings"
	"time"

	"betreport/models"
	"betreport/service"

	"github.com/bwmarrin/discordgo"
)

// Custom ID prefixes for report interactions. The session ID follows the prefix.
const (
	changeWindowButtonPrefix = "report_window_"
	changeWindowModalPrefix  = "report_window_modal_"
)

// Modal input IDs, also the option names of /report
const (
	inputStartDate = "start_date"
	inputStartTime = "start_time"
	inputEndDate   = "end_date"
	inputEndTime   = "end_time"
)

// windowInput is the raw user-entered window
type windowInput struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// toWindow validates the input and composes the window
func (in windowInput) toWindow(loc *time.Location) (models.TimeWindow, error) {
	return service.NewTimeWindow(in.StartDate, in.StartTime, in.EndDate, in.EndTime, loc)
}

// BuildReportComponents creates the button row attached to a report
func BuildReportComponents(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🕒 Change window",
					Style:    discordgo.SecondaryButton,
					CustomID: changeWindowButtonPrefix + sessionID,
				},
			},
		},
	}
}

// BuildWindowModal creates the modal for re-filtering a cached ledger, prefilled with the current window
func BuildWindowModal(sessionID string, current models.TimeWindow) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: changeWindowModalPrefix + sessionID,
		Title:    "Change report window",
		Components: []discordgo.MessageComponent{
			textInputRow(inputStartDate, "Start date (YYYY-MM-DD)", current.Start.Format(service.DateLayout), 10, true),
			textInputRow(inputStartTime, "Start time (HH:MM)", current.Start.Format(service.ClockLayout), 5, false),
			textInputRow(inputEndDate, "End date (YYYY-MM-DD)", current.End.Format(service.DateLayout), 10, true),
			textInputRow(inputEndTime, "End time (HH:MM)", current.End.Format(service.ClockLayout), 5, false),
		},
	}
}

func textInputRow(id, label, value string, maxLength int, required bool) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:  id,
				Label:     label,
				Style:     discordgo.TextInputShort,
				Value:     value,
				Required:  required,
				MaxLength: maxLength,
			},
		},
	}
}

// sessionIDFrom strips prefix from a custom ID
func sessionIDFrom(customID, prefix string) (string, bool) {
	if !strings.HasPrefix(customID, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(customID, prefix)
	return id, id != ""
}

// parseWindowModal collects the text inputs of a submitted window modal by custom ID
func parseWindowModal(data discordgo.ModalSubmitInteractionData) windowInput {
	values := make(map[string]string)
	for _, component := range data.Components {
		var inner []discordgo.MessageComponent
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			inner = row.Components
		case discordgo.ActionsRow:
			inner = row.Components
		}
		for _, c := range inner {
			switch input := c.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = strings.TrimSpace(input.Value)
			case discordgo.TextInput:
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}

	return windowInput{
		StartDate: values[inputStartDate],
		StartTime: values[inputStartTime],
		EndDate:   values[inputEndDate],
		EndTime:   values[inputEndTime],
	}
}
