package report

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"betreport/bot/common"
	"betreport/events"
	"betreport/models"
	"betreport/service"
	"betreport/testutil"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestFeature(t *testing.T, reportService service.ReportService) (*Feature, chan events.Event) {
	t.Helper()

	bus := events.NewBus()
	received := make(chan events.Event, 10)
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		received <- event
	})

	f := New(Config{
		MaxUploadBytes: 1 << 20,
		SessionTTL:     time.Hour,
		PromotionURL:   "https://example.com/promo",
		Location:       time.UTC,
	}, reportService, bus)
	t.Cleanup(f.Close)

	return f, received
}

func waitForEvent(t *testing.T, received chan events.Event) events.Event {
	t.Helper()
	select {
	case event := <-received:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func ingestScenario(t *testing.T, reportService service.ReportService) *service.Ledger {
	t.Helper()
	ledger, err := reportService.Ingest(context.Background(), strings.NewReader(testutil.ScenarioLedgerCSV()))
	require.NoError(t, err)
	return ledger
}

func TestBuildReportMessage(t *testing.T) {
	ctx := context.Background()
	reportService := service.NewReportService(service.DefaultEligibilityList(), service.IngestOptions{})
	f, received := newTestFeature(t, reportService)

	window := testutil.CreateTestWindow("2024-01-01 00:00", "2024-01-01 23:59")
	session := f.sessions.Create("user-1", "ledger.csv", ingestScenario(t, reportService), window)

	params, err := f.buildReportMessage(ctx, session, window, false)
	require.NoError(t, err)

	require.Len(t, params.Embeds, 3)
	assert.Equal(t, "R$ 30.00", params.Embeds[0].Fields[0].Value)
	assert.Equal(t, "R$ 10.00", params.Embeds[0].Fields[1].Value)
	assert.Equal(t, "R$ 20.00", params.Embeds[0].Fields[2].Value)
	assert.Contains(t, params.Embeds[1].Description, "Fortune Tiger")
	assert.Contains(t, params.Embeds[2].Description, "Roulette")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, params.Flags)

	require.Len(t, params.Components, 1)
	button := params.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, changeWindowButtonPrefix+session.ID, button.CustomID)

	require.Len(t, params.Files, 2)
	assert.Equal(t, SummaryCardFilename, params.Files[0].Name)
	assert.Equal(t, "wagers_20240101-0000_to_20240101-2359.csv", params.Files[1].Name)

	export, err := io.ReadAll(params.Files[1].Reader)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(export))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, service.RequiredColumns, rows[0])

	event := waitForEvent(t, received)
	generated, ok := event.(events.ReportGeneratedEvent)
	require.True(t, ok)
	assert.Equal(t, "user-1", generated.UserID)
	assert.Equal(t, session.ID, generated.SessionID)
	assert.Equal(t, 2, generated.Rounds)
	assert.Equal(t, "30.00", generated.TotalOverall)
	assert.Equal(t, "10.00", generated.TotalEligible)
	assert.Equal(t, "20.00", generated.TotalNonEligible)
	assert.False(t, generated.Refilter)
}

func TestBuildReportMessage_Refilter(t *testing.T) {
	ctx := context.Background()
	reportService := service.NewReportService(service.DefaultEligibilityList(), service.IngestOptions{})
	f, received := newTestFeature(t, reportService)

	session := f.sessions.Create("user-1", "ledger.csv", ingestScenario(t, reportService),
		testutil.CreateTestWindow("2024-01-01 00:00", "2024-01-01 23:59"))

	narrow := testutil.CreateTestWindow("2024-01-01 10:30", "2024-01-01 11:30")
	params, err := f.buildReportMessage(ctx, session, narrow, true)
	require.NoError(t, err)
	assert.Equal(t, "R$ 20.00", params.Embeds[0].Fields[0].Value)
	assert.Equal(t, "R$ 0.00", params.Embeds[0].Fields[1].Value)

	generated := waitForEvent(t, received).(events.ReportGeneratedEvent)
	assert.True(t, generated.Refilter)
	assert.Equal(t, 1, generated.Rounds)
}

func TestBuildReportMessage_EmptyWindow(t *testing.T) {
	ctx := context.Background()
	reportService := service.NewReportService(service.DefaultEligibilityList(), service.IngestOptions{})
	f, received := newTestFeature(t, reportService)

	window := testutil.CreateTestWindow("2024-02-01 00:00", "2024-02-01 23:59")
	session := f.sessions.Create("user-1", "ledger.csv", ingestScenario(t, reportService), window)

	params, err := f.buildReportMessage(ctx, session, window, false)
	assert.ErrorIs(t, err, service.ErrEmptyResult)
	require.NotNil(t, params)
	require.Len(t, params.Embeds, 1)
	assert.Contains(t, params.Embeds[0].Description, "No wagers found for the selected period.")
	assert.Equal(t, common.ColorWarning, params.Embeds[0].Color)
	assert.Empty(t, params.Files)
	require.Len(t, params.Components, 1)

	select {
	case event := <-received:
		t.Fatalf("unexpected event %T", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBuildReportMessage_GenerateError(t *testing.T) {
	ctx := context.Background()
	mockService := new(service.MockReportService)
	f, _ := newTestFeature(t, mockService)

	ledger := service.NewLedger(nil)
	window := testutil.CreateTestWindow("2024-01-01 00:00", "2024-01-01 23:59")
	session := f.sessions.Create("user-1", "ledger.csv", ledger, window)

	mockService.On("Generate", mock.Anything, ledger, window).Return(nil, errors.New("boom"))

	params, err := f.buildReportMessage(ctx, session, window, false)
	assert.Nil(t, params)
	assert.EqualError(t, err, "boom")
	mockService.AssertExpectations(t)
}

func TestReject_EmitsEvent(t *testing.T) {
	f, received := newTestFeature(t, new(service.MockReportService))

	f.reject(context.Background(), "user-1", "session-1", &service.SchemaError{Missing: []string{"Client"}})

	rejected, ok := waitForEvent(t, received).(events.ReportRejectedEvent)
	require.True(t, ok)
	assert.Equal(t, "user-1", rejected.UserID)
	assert.Equal(t, "session-1", rejected.SessionID)
	assert.Equal(t, events.RejectReasonSchema, rejected.Reason)
	assert.Contains(t, rejected.Detail, "Client")
}

func TestCommandOptions(t *testing.T) {
	attachment := &discordgo.MessageAttachment{ID: "att-1", Filename: "ledger.csv", URL: "https://cdn.example.com/ledger.csv"}

	data := discordgo.ApplicationCommandInteractionData{
		Name: "report",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: optionFile, Type: discordgo.ApplicationCommandOptionAttachment, Value: "att-1"},
			{Name: inputStartDate, Type: discordgo.ApplicationCommandOptionString, Value: "2024-01-01"},
			{Name: inputEndDate, Type: discordgo.ApplicationCommandOptionString, Value: " 2024-01-02 "},
			{Name: inputEndTime, Type: discordgo.ApplicationCommandOptionString, Value: "18:00"},
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Attachments: map[string]*discordgo.MessageAttachment{"att-1": attachment},
		},
	}

	got, input, err := commandOptions(data)
	require.NoError(t, err)
	assert.Same(t, attachment, got)
	assert.Equal(t, windowInput{StartDate: "2024-01-01", EndDate: "2024-01-02", EndTime: "18:00"}, input)

	window, err := input.toWindow(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, models.TimeWindow{
		Start: testutil.MustTime("2024-01-01 00:00"),
		End:   testutil.MustTime("2024-01-02 18:00"),
	}, window)
}

func TestCommandOptions_MissingAttachment(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "report",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: inputStartDate, Type: discordgo.ApplicationCommandOptionString, Value: "2024-01-01"},
		},
	}

	_, _, err := commandOptions(data)
	assert.ErrorIs(t, err, ErrMissingAttachment)
}
