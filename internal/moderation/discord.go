package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier implements Notifier over a discordgo session
type DiscordNotifier struct {
	session *discordgo.Session
}

// NewDiscordNotifier creates a notifier using the given session
func NewDiscordNotifier(session *discordgo.Session) *DiscordNotifier {
	return &DiscordNotifier{session: session}
}

// SendDM opens (or reuses) the DM channel with the user and sends the content.
// Users with DMs disabled make this fail; callers treat that as non-fatal.
func (n *DiscordNotifier) SendDM(userID, content string) error {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSend(channel.ID, content)
	return err
}

// DiscordEnforcer implements Enforcer over a discordgo session
type DiscordEnforcer struct {
	session *discordgo.Session
}

// NewDiscordEnforcer creates an enforcer using the given session
func NewDiscordEnforcer(session *discordgo.Session) *DiscordEnforcer {
	return &DiscordEnforcer{session: session}
}

// Kick removes the member from the guild
func (e *DiscordEnforcer) Kick(guildID, userID, reason string) error {
	return e.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// Ban bans the member without pruning message history
func (e *DiscordEnforcer) Ban(guildID, userID, reason string) error {
	return e.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// Timeout places the member in communication timeout until the given time
func (e *DiscordEnforcer) Timeout(guildID, userID string, until time.Time, reason string) error {
	return e.session.GuildMemberTimeout(guildID, userID, &until)
}
