// Package info - !ping command
package info

import (
	"fmt"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/errors"
)

// createPingCommand creates the !ping command
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Check the bot latency",
		"info",
		pingHandler,
	)
}

// pingHandler handles the !ping command
func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
		ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
	}()
	return nil
}
