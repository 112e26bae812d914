package common

import (
	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the user behind an interaction, in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the ID of the user behind an interaction, or "" when unknown
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// GetDisplayName returns the server-specific display name for the interaction's user.
// Falls back to the username outside guilds or when no nickname is set.
func GetDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	if user := InteractionUser(i); user != nil {
		return user.Username
	}
	return "Unknown"
}
