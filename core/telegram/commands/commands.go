// Package commands declares the metadata attached to registered bot commands.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// AdminOnly commands are gated by the access middleware; Hidden ones are kept
// out of the Telegram command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
