package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"betreport/bot/features/report"
	"betreport/events"
	"betreport/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
	Report  report.Config
}

type Bot struct {
	config        Config
	session       *discordgo.Session
	reportFeature *report.Feature
}

func New(config Config, reportService service.ReportService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:        config,
		session:       dg,
		reportFeature: report.New(config.Report, reportService, eventBus),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.reportFeature.HandleInteraction)

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		bot.reportFeature.Close()
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		bot.reportFeature.Close()
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	b.reportFeature.Close()
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandReport:
		b.reportFeature.HandleCommand(s, i)
	case commandEligibleGames:
		b.reportFeature.HandleEligibleGames(s, i)
	}
}
