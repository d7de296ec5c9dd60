// Package discord provides command types and structures.
package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandContext provides context for command execution
type CommandContext struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Client  *ExtendedClient
	// Args holds the whitespace-separated tokens after the command name
	Args []string
}

// Command represents a prefix-triggered text command
type Command struct {
	Name            string
	Description     string
	Category        string
	Usage           string
	UserPermissions int64
	OwnerOnly       bool
	Run             CommandRunFunc
}

// CommandRunFunc is the function type for command execution
type CommandRunFunc func(ctx *CommandContext) error

// NewCommand creates a new Command with required fields
func NewCommand(name, description, category string, run CommandRunFunc) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Category:    category,
		Run:         run,
	}
}

// WithUsage sets the usage line shown in help output
func (c *Command) WithUsage(usage string) *Command {
	c.Usage = usage
	return c
}

// WithUserPermissions sets required user permissions
func (c *Command) WithUserPermissions(perms int64) *Command {
	c.UserPermissions = perms
	return c
}

// AsOwnerOnly restricts the command to the bot owner
func (c *Command) AsOwnerOnly() *Command {
	c.OwnerOnly = true
	return c
}

// Reply sends a reply referencing the triggering message
func (ctx *CommandContext) Reply(content string) error {
	_, err := ctx.Session.ChannelMessageSendReply(ctx.Message.ChannelID, content, ctx.Message.Reference())
	return err
}

// ReplyEmbed sends an embed to the channel of the triggering message
func (ctx *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, embed)
	return err
}

// SendEmbed sends an embed and returns the created message so it can be
// edited in place later (used for live progress updates)
func (ctx *CommandContext) SendEmbed(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, embed)
}

// EditEmbed replaces the embed of a previously sent message
func (ctx *CommandContext) EditEmbed(messageID string, embed *discordgo.MessageEmbed) error {
	_, err := ctx.Session.ChannelMessageEditEmbed(ctx.Message.ChannelID, messageID, embed)
	return err
}

// Arg returns the i-th argument or an empty string
func (ctx *CommandContext) Arg(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return ctx.Args[i]
}

// ArgsFrom joins the arguments starting at index i with single spaces
func (ctx *CommandContext) ArgsFrom(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return strings.Join(ctx.Args[i:], " ")
}

// MentionedUser returns the first mentioned user, or nil
func (ctx *CommandContext) MentionedUser() *discordgo.User {
	if len(ctx.Message.Mentions) == 0 {
		return nil
	}
	return ctx.Message.Mentions[0]
}

// MentionedMember resolves the first mentioned user to a guild member
func (ctx *CommandContext) MentionedMember() *discordgo.Member {
	user := ctx.MentionedUser()
	if user == nil {
		return nil
	}
	member, err := ctx.Session.GuildMember(ctx.Message.GuildID, user.ID)
	if err != nil {
		return nil
	}
	return member
}

// Author returns the user who triggered the command
func (ctx *CommandContext) Author() *discordgo.User {
	return ctx.Message.Author
}

// Guild returns the guild where the command was triggered
func (ctx *CommandContext) Guild() *discordgo.Guild {
	if ctx.Message.GuildID == "" {
		return nil
	}
	guild, _ := ctx.Session.State.Guild(ctx.Message.GuildID)
	return guild
}

// Channel returns the channel where the command was triggered
func (ctx *CommandContext) Channel() *discordgo.Channel {
	channel, _ := ctx.Session.State.Channel(ctx.Message.ChannelID)
	return channel
}

// HasPermission reports whether the author holds the given permission in the
// current channel
func (ctx *CommandContext) HasPermission(perm int64) bool {
	perms, err := ctx.Session.UserChannelPermissions(ctx.Message.Author.ID, ctx.Message.ChannelID)
	if err != nil {
		return false
	}
	return perms&perm != 0 || perms&discordgo.PermissionAdministrator != 0
}
