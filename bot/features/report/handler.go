package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"betreport/bot/common"
	"betreport/events"
	"betreport/models"
	"betreport/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const optionFile = "file"

const sessionExpiredMessage = "This report has expired. Run /report again with the CSV."

// handleReport handles the /report slash command
func (f *Feature) handleReport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := common.InteractionUserID(i)

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring report response: %v", err)
		return
	}

	attachment, input, err := commandOptions(i.ApplicationCommandData())
	if err != nil {
		f.fail(ctx, s, i, userID, "", err)
		return
	}

	data, err := downloadAttachment(ctx, s.Client, attachment, f.config.MaxUploadBytes)
	if err != nil {
		f.fail(ctx, s, i, userID, "", err)
		return
	}

	ledger, err := f.reportService.Ingest(ctx, bytes.NewReader(data))
	if err != nil {
		f.fail(ctx, s, i, userID, "", err)
		return
	}

	window, err := input.toWindow(f.config.Location)
	if err != nil {
		f.fail(ctx, s, i, userID, "", err)
		return
	}

	session := f.sessions.Create(userID, attachment.Filename, ledger, window)
	stats := ledger.Stats()
	f.eventBus.Emit(ctx, events.LedgerIngestedEvent{
		UserID:            userID,
		SessionID:         session.ID,
		Filename:          attachment.Filename,
		Rows:              stats.Rows,
		Kept:              stats.Kept,
		DroppedTimestamps: stats.DroppedTimestamps,
		RepairedAmounts:   stats.RepairedAmounts,
	})

	log.WithFields(log.Fields{
		"user":      common.GetDisplayName(i),
		"sessionID": session.ID,
		"filename":  attachment.Filename,
	}).Info("Report session created")

	f.sendReport(ctx, s, i, session, window, false)
}

// handleChangeWindowButton opens the window modal for a cached ledger
func (f *Feature) handleChangeWindowButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessionID, ok := sessionIDFrom(i.MessageComponentData().CustomID, changeWindowButtonPrefix)
	if !ok {
		common.RespondWithError(s, i, "This button does not belong to a report.")
		return
	}

	session, ok := f.sessions.Get(sessionID, common.InteractionUserID(i))
	if !ok {
		f.expire(s, i)
		return
	}

	if err := common.RespondWithModal(s, i, BuildWindowModal(session.ID, session.Window)); err != nil {
		log.Errorf("Error opening report window modal: %v", err)
	}
}

// handleChangeWindowModal re-runs the report on the cached ledger with the submitted window
func (f *Feature) handleChangeWindowModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := common.InteractionUserID(i)
	data := i.ModalSubmitData()
	sessionID, _ := sessionIDFrom(data.CustomID, changeWindowModalPrefix)

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring report window response: %v", err)
		return
	}

	session, ok := f.sessions.Get(sessionID, userID)
	if !ok {
		common.FollowUpWithError(s, i, sessionExpiredMessage)
		return
	}

	window, err := parseWindowModal(data).toWindow(f.config.Location)
	if err != nil {
		f.fail(ctx, s, i, userID, session.ID, err)
		return
	}

	f.sendReport(ctx, s, i, session, window, true)
}

// sendReport generates the report for window and posts it as a follow-up
func (f *Feature) sendReport(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, session Session, window models.TimeWindow, refilter bool) {
	params, err := f.buildReportMessage(ctx, session, window, refilter)
	if err != nil {
		f.reject(ctx, session.UserID, session.ID, err)
		if params == nil {
			f.notify(s, i, err)
			return
		}
	}

	f.sessions.UpdateWindow(session.ID, window)

	if _, err := common.FollowUpWithMessage(s, i, params); err != nil {
		log.Errorf("Error sending report for session %s: %v", session.ID, err)
	}
}

// buildReportMessage runs the report and renders the follow-up message.
// An empty window still yields a message, carrying the change-window button, alongside ErrEmptyResult.
func (f *Feature) buildReportMessage(ctx context.Context, session Session, window models.TimeWindow, refilter bool) (*discordgo.WebhookParams, error) {
	report, err := f.reportService.Generate(ctx, session.Ledger, window)
	if errors.Is(err, service.ErrEmptyResult) {
		message, _ := userMessage(err)
		return &discordgo.WebhookParams{
			Embeds:     []*discordgo.MessageEmbed{BuildEmptyResultEmbed(message, window)},
			Components: BuildReportComponents(session.ID),
			Flags:      discordgo.MessageFlagsEphemeral,
		}, err
	}
	if err != nil {
		return nil, err
	}

	card, err := f.cards.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render summary card: %w", err)
	}

	var export bytes.Buffer
	if err := service.WriteLedgerCSV(&export, report.Records); err != nil {
		return nil, err
	}

	f.eventBus.Emit(ctx, events.ReportGeneratedEvent{
		UserID:           session.UserID,
		SessionID:        session.ID,
		WindowStart:      report.Window.Start,
		WindowEnd:        report.Window.End,
		Rounds:           report.RoundCount(),
		EligibleGames:    len(report.Eligible),
		NonEligibleGames: len(report.NonEligible),
		TotalOverall:     report.Summary.TotalOverall.StringFixed(2),
		TotalEligible:    report.Summary.TotalEligible.StringFixed(2),
		TotalNonEligible: report.Summary.TotalNonEligible.StringFixed(2),
		Refilter:         refilter,
	})

	expiresAt := f.sessions.ExpiresAt(time.Now())
	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			BuildSummaryEmbed(report, session.Filename, f.config.PromotionURL, expiresAt),
			BuildTableEmbed("✅ Eligible Games", report.Eligible, common.ColorSuccess),
			BuildTableEmbed("❌ Non-Eligible Games", report.NonEligible, common.ColorDanger),
		},
		Components: BuildReportComponents(session.ID),
		Files: []*discordgo.File{
			{Name: SummaryCardFilename, ContentType: "image/png", Reader: bytes.NewReader(card)},
			{Name: service.ExportFilename(report.Window), ContentType: "text/csv", Reader: &export},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}, nil
}

// fail records a rejected run and tells the user why
func (f *Feature) fail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, sessionID string, err error) {
	f.reject(ctx, userID, sessionID, err)
	f.notify(s, i, err)
}

func (f *Feature) notify(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message, failure := userMessage(err)
	if failure {
		common.FollowUpWithError(s, i, message)
		return
	}
	common.FollowUpWithWarning(s, i, message)
}

func (f *Feature) reject(ctx context.Context, userID, sessionID string, err error) {
	reason := rejectReason(err)
	fields := log.Fields{
		"userID":    userID,
		"sessionID": sessionID,
		"reason":    reason,
	}
	if reason == events.RejectReasonInternal {
		log.WithFields(fields).Errorf("Report failed: %v", err)
	} else {
		log.WithFields(fields).Infof("Report rejected: %v", err)
	}

	f.eventBus.Emit(ctx, events.ReportRejectedEvent{
		UserID:    userID,
		SessionID: sessionID,
		Reason:    reason,
		Detail:    err.Error(),
	})
}

// expire disables the stale button and tells the user to start over
func (f *Feature) expire(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var components []discordgo.MessageComponent
	if i.Message != nil {
		components = common.DisableComponents(i.Message.Components)
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error disabling expired report components: %v", err)
		return
	}
	common.FollowUpWithError(s, i, sessionExpiredMessage)
}

// commandOptions reads the attachment and window inputs of /report
func commandOptions(data discordgo.ApplicationCommandInteractionData) (*discordgo.MessageAttachment, windowInput, error) {
	var input windowInput
	var attachmentID string

	for _, opt := range data.Options {
		switch opt.Name {
		case optionFile:
			attachmentID, _ = opt.Value.(string)
		case inputStartDate:
			input.StartDate = strings.TrimSpace(opt.StringValue())
		case inputStartTime:
			input.StartTime = strings.TrimSpace(opt.StringValue())
		case inputEndDate:
			input.EndDate = strings.TrimSpace(opt.StringValue())
		case inputEndTime:
			input.EndTime = strings.TrimSpace(opt.StringValue())
		}
	}

	if attachmentID == "" || data.Resolved == nil {
		return nil, input, ErrMissingAttachment
	}
	attachment, ok := data.Resolved.Attachments[attachmentID]
	if !ok || attachment == nil {
		return nil, input, ErrMissingAttachment
	}

	return attachment, input, nil
}
