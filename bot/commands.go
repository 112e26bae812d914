package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	commandReport        = "report"
	commandEligibleGames = "eligible-games"
)

// Commands returns the slash commands the bot registers
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandReport,
			Description: "Build a wager report from a ledger CSV",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "Ledger CSV with Game Name, Bet, Creation Date and Client columns",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "start_date",
					Description: "First day to include (YYYY-MM-DD)",
					Required:    true,
					MinLength:   intPtr(10),
					MaxLength:   10,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "end_date",
					Description: "Last day to include (YYYY-MM-DD)",
					Required:    true,
					MinLength:   intPtr(10),
					MaxLength:   10,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "start_time",
					Description: "Start time (HH:MM), defaults to 00:00",
					Required:    false,
					MaxLength:   5,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "end_time",
					Description: "End time (HH:MM), defaults to 23:59",
					Required:    false,
					MaxLength:   5,
				},
			},
		},
		{
			Name:        commandEligibleGames,
			Description: "List the games that count towards the promotion",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		log.Infof("Registered command: %s", cmd.Name)
	}

	return nil
}

func intPtr(v int) *int {
	return &v
}
