package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"betreport/bot"
	"betreport/bot/features/report"
	"betreport/config"
	"betreport/events"
	"betreport/service"
)

const serviceName = "betreport"

// Run initializes and starts the Discord bot
func Run(ctx context.Context) error {
	cfg := config.Get()
	SetupLogging(cfg)

	log.Info("Starting betreport bot...")

	if err := cfg.ValidateForBot(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize event bus
	log.Info("Initializing event bus...")
	eventBus := events.NewBus()
	eventBus.SubscribeAll(logEvent)

	if cfg.NATSURL != "" {
		log.Info("Connecting to NATS...")
		conn, err := events.ConnectNATS(cfg.NATSURL, serviceName)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer conn.Close()

		events.NewNATSPublisher(conn, "", serviceName).Attach(eventBus)
		log.Info("Report events will be published to NATS")
	}

	// Initialize services
	log.Info("Initializing services...")
	reportService := newReportService(cfg)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
		Report: report.Config{
			MaxUploadBytes: cfg.MaxUploadBytes,
			SessionTTL:     cfg.ReportSessionTTL,
			PromotionURL:   cfg.PromotionURL,
			Location:       cfg.Location,
		},
	}
	discordBot, err := bot.New(botConfig, reportService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}

// SetupLogging applies the configured level and formatter to the standard logrus logger
func SetupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func newReportService(cfg *config.Config) service.ReportService {
	return service.NewReportService(service.DefaultEligibilityList(), service.IngestOptions{
		Location: cfg.Location,
		MaxRows:  cfg.MaxLedgerRows,
	})
}

// logEvent writes every bus event to the log
func logEvent(ctx context.Context, event events.Event) {
	fields := log.Fields{"eventType": event.Type()}

	switch e := event.(type) {
	case events.LedgerIngestedEvent:
		fields["sessionID"] = e.SessionID
		fields["rows"] = e.Rows
		fields["kept"] = e.Kept
	case events.ReportGeneratedEvent:
		fields["sessionID"] = e.SessionID
		fields["rounds"] = e.Rounds
		fields["refilter"] = e.Refilter
	case events.ReportRejectedEvent:
		fields["sessionID"] = e.SessionID
		fields["reason"] = e.Reason
	}

	log.WithFields(fields).Info(strings.ReplaceAll(string(event.Type()), "_", " "))
}
