package report

import (
	"strings"
	"time"

	"betreport/bot/common"
	"betreport/events"
	"betreport/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds report-specific configuration
type Config struct {
	MaxUploadBytes int64
	SessionTTL     time.Duration
	PromotionURL   string
	Location       *time.Location
}

// Feature represents the report feature
type Feature struct {
	config        Config
	reportService service.ReportService
	eventBus      *events.Bus
	sessions      *SessionStore
	cards         *SummaryCardGenerator
	stop          chan struct{}
}

// New creates a new report feature instance
func New(config Config, reportService service.ReportService, eventBus *events.Bus) *Feature {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = time.Hour
	}

	f := &Feature{
		config:        config,
		reportService: reportService,
		eventBus:      eventBus,
		sessions:      NewSessionStore(config.SessionTTL),
		cards:         NewSummaryCardGenerator(),
		stop:          make(chan struct{}),
	}

	// Start session cleanup
	go f.startSessionCleanup()

	return f
}

// HandleCommand handles the /report command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleReport(s, i)
}

// HandleEligibleGames handles the /eligible-games command
func (f *Feature) HandleEligibleGames(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := BuildEligibleGamesEmbed(f.reportService.Eligibility(), f.config.PromotionURL)
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to eligible-games command: %v", err)
	}
}

// HandleInteraction handles report-related component interactions and modals
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		if strings.HasPrefix(i.MessageComponentData().CustomID, changeWindowButtonPrefix) {
			f.handleChangeWindowButton(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, changeWindowModalPrefix) {
			f.handleChangeWindowModal(s, i)
		}
	}
}

// Close stops the session cleanup loop
func (f *Feature) Close() {
	close(f.stop)
}

// startSessionCleanup runs periodic cleanup of expired report sessions
func (f *Feature) startSessionCleanup() {
	ticker := time.NewTicker(f.config.SessionTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := f.sessions.Cleanup(); removed > 0 {
				log.WithField("removed", removed).Debug("Expired report sessions removed")
			}
		case <-f.stop:
			return
		}
	}
}
