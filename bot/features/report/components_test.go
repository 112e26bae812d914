package report

import (
	"testing"
	"time"

	"betreport/service"
	"betreport/testutil"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportComponents(t *testing.T) {
	components := BuildReportComponents("abc")
	require.Len(t, components, 1)

	row := components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 1)
	button := row.Components[0].(discordgo.Button)
	assert.Equal(t, "report_window_abc", button.CustomID)
	assert.Equal(t, "🕒 Change window", button.Label)
}

func TestBuildWindowModal(t *testing.T) {
	window := testutil.CreateTestWindow("2024-01-01 08:30", "2024-01-02 17:45")
	modal := BuildWindowModal("abc", window)

	assert.Equal(t, "report_window_modal_abc", modal.CustomID)
	require.Len(t, modal.Components, 4)

	values := map[string]string{}
	for _, component := range modal.Components {
		input := component.(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
		values[input.CustomID] = input.Value
	}
	assert.Equal(t, map[string]string{
		"start_date": "2024-01-01",
		"start_time": "08:30",
		"end_date":   "2024-01-02",
		"end_time":   "17:45",
	}, values)
}

func TestSessionIDFrom(t *testing.T) {
	id, ok := sessionIDFrom("report_window_abc", changeWindowButtonPrefix)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = sessionIDFrom("report_window_", changeWindowButtonPrefix)
	assert.False(t, ok)

	_, ok = sessionIDFrom("bet_odds_10", changeWindowButtonPrefix)
	assert.False(t, ok)
}

func modalSubmit(values map[string]string) discordgo.ModalSubmitInteractionData {
	data := discordgo.ModalSubmitInteractionData{CustomID: "report_window_modal_abc"}
	for _, id := range []string{inputStartDate, inputStartTime, inputEndDate, inputEndTime} {
		data.Components = append(data.Components, &discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: id, Value: values[id]},
			},
		})
	}
	return data
}

func TestParseWindowModal(t *testing.T) {
	input := parseWindowModal(modalSubmit(map[string]string{
		inputStartDate: " 2024-01-01 ",
		inputStartTime: "10:00",
		inputEndDate:   "2024-01-01",
		inputEndTime:   "",
	}))

	assert.Equal(t, windowInput{StartDate: "2024-01-01", StartTime: "10:00", EndDate: "2024-01-01"}, input)

	window, err := input.toWindow(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, testutil.MustTime("2024-01-01 10:00"), window.Start)
	assert.Equal(t, testutil.MustTime("2024-01-01 23:59"), window.End)
}

func TestWindowInput_InvalidClock(t *testing.T) {
	_, err := windowInput{StartDate: "2024-01-01", StartTime: "25:00", EndDate: "2024-01-01"}.toWindow(time.UTC)
	assert.ErrorIs(t, err, service.ErrInvalidTimeFormat)
}
