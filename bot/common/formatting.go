package common

import (
	"fmt"
	"strings"
	"time"
)

// Discord message limits
const (
	EmbedDescriptionLimit = 4096
	EmbedFieldValueLimit  = 1024
	EmbedTitleLimit       = 256
)

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// CodeBlock wraps text in a fenced code block
func CodeBlock(text string) string {
	return "```\n" + strings.TrimRight(text, "\n") + "\n```"
}

// FitLines joins as many leading lines as fit in limit once wrapped in a code block.
// It returns the block and how many lines were left out.
func FitLines(lines []string, limit int, overflow func(omitted int) string) (string, int) {
	// fence characters plus the newlines around the body
	budget := limit - len("```\n\n```")

	kept := 0
	used := 0
	for kept < len(lines) {
		cost := len(lines[kept]) + 1
		omitted := len(lines) - kept - 1
		reserve := 0
		if omitted > 0 && overflow != nil {
			reserve = len(overflow(omitted)) + 1
		}
		if used+cost+reserve > budget {
			break
		}
		used += cost
		kept++
	}

	omitted := len(lines) - kept
	body := strings.Join(lines[:kept], "\n")
	if omitted > 0 && overflow != nil {
		body += "\n" + overflow(omitted)
	}
	return CodeBlock(body), omitted
}

// Truncate shortens s to at most max bytes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	const ellipsis = "…"
	cut := max - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	// back off to a rune boundary
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
