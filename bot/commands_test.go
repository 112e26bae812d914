package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	commands := Commands()
	require.Len(t, commands, 2)

	reportCmd := commands[0]
	assert.Equal(t, "report", reportCmd.Name)

	options := map[string]*discordgo.ApplicationCommandOption{}
	for _, opt := range reportCmd.Options {
		options[opt.Name] = opt
	}

	require.Contains(t, options, "file")
	assert.Equal(t, discordgo.ApplicationCommandOptionAttachment, options["file"].Type)
	assert.True(t, options["file"].Required)

	for _, name := range []string{"start_date", "end_date"} {
		require.Contains(t, options, name)
		assert.True(t, options[name].Required, name)
	}
	for _, name := range []string{"start_time", "end_time"} {
		require.Contains(t, options, name)
		assert.False(t, options[name].Required, name)
	}

	// Discord requires required options to come before optional ones
	seenOptional := false
	for _, opt := range reportCmd.Options {
		if !opt.Required {
			seenOptional = true
			continue
		}
		assert.False(t, seenOptional, "required option %s after an optional one", opt.Name)
	}

	assert.Equal(t, "eligible-games", commands[1].Name)
}
