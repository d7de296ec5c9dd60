// Package support - !ticket and !close commands
package support

import (
	"fmt"

	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// defaultTicketReason is used when the member opens a ticket without a reason
const defaultTicketReason = "General Support Request"

// createTicketCommand creates the !ticket command
func createTicketCommand(registry *tickets.Registry) *discord.Command {
	return discord.NewCommand(
		"ticket",
		"Open a support ticket",
		"support",
		ticketHandler(registry),
	).WithUsage("ticket [reason]")
}

// ticketHandler handles the !ticket command
func ticketHandler(registry *tickets.Registry) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		reason := ctx.ArgsFrom(0)
		if reason == "" {
			reason = defaultTicketReason
		}

		ticket, err := registry.Create(ctx.Message.GuildID, ctx.Author(), reason, ctx.Author().ID)
		if err != nil {
			return ctx.Reply("❌ Could not open a ticket right now. Please try again later or contact a staff member.")
		}

		return ctx.Reply(fmt.Sprintf("🎫 Your support ticket is ready: <#%s>", ticket.ChannelID))
	}
}

// createCloseCommand creates the !close command, usable inside a ticket channel
func createCloseCommand(registry *tickets.Registry) *discord.Command {
	return discord.NewCommand(
		"close",
		"Close the current support ticket",
		"support",
		closeHandler(registry),
	).WithUsage("close")
}

// closeHandler handles the !close command
func closeHandler(registry *tickets.Registry) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		if _, ok := registry.Get(ctx.Message.ChannelID); !ok {
			return ctx.Reply("❌ This is not a valid ticket channel.")
		}

		if err := ctx.Reply("🔒 Closing this ticket. The channel will be deleted shortly."); err != nil {
			return err
		}
		registry.Close(ctx.Message.ChannelID)
		return nil
	}
}
