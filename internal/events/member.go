// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/config"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient, deps Deps) {
	client.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		onGuildMemberAdd(s, m, deps)
	})
	client.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		onGuildMemberRemove(s, m, deps)
	})
}

// onGuildMemberAdd applies the community conventions to a new member:
// nickname prefix, welcome role, welcome message and a join log entry.
// Every step is best-effort.
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd, deps Deps) {
	cfg := config.Get()

	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s", m.User.Username, m.GuildID), "Member")

	nick := fmt.Sprintf("%s %s", cfg.NicknamePrefix, m.User.Username)
	if err := s.GuildMemberNickname(m.GuildID, m.User.ID, nick); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo establecer el apodo de %s: %v", m.User.ID, err), "Member")
	}

	if roleID := findRoleByName(s, m.GuildID, cfg.WelcomeRoleName); roleID != "" {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, roleID); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo asignar el rol de bienvenida: %v", err), "Member")
		}
	}

	sendWelcomeMessage(s, m, cfg.CommandPrefix)
	logJoin(s, m, nick, deps)
}

// sendWelcomeMessage posts the welcome embed to the welcome/general channel
func sendWelcomeMessage(s *discordgo.Session, m *discordgo.GuildMemberAdd, prefix string) {
	channelID := findTextChannel(s, m.GuildID, "welcome", "general")
	if channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "👋 Welcome to Trapo Cloud!",
		Description: fmt.Sprintf("Welcome <@%s>! We're glad to have you here at **Trapo Cloud**!", m.User.ID),
		Color:       0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Read the Rules", Value: "Make sure to check out our server rules!", Inline: false},
			{Name: "🎫 Need Help?", Value: fmt.Sprintf("Use `%sticket` to create a support ticket!", prefix), Inline: false},
			{Name: "📜 Commands", Value: fmt.Sprintf("Type `%shelp` to see all available commands!", prefix), Inline: false},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("256")},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar el mensaje de bienvenida: %v", err), "Member")
	}
}

// logJoin writes the join entry to the moderation log channel
func logJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd, nick string, deps Deps) {
	if deps.ModLog == nil {
		return
	}
	channelID, err := deps.ModLog.ChannelID(m.GuildID)
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo obtener el canal de logs: %v", err), "Member")
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(m.User.ID)
	embed := &discordgo.MessageEmbed{
		Title: "📥 New Member Joined",
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 User", Value: fmt.Sprintf("%s (%s)", m.User.Username, m.User.ID), Inline: true},
			{Name: "🏷️ Nickname Set", Value: nick, Inline: true},
			{Name: "📅 Account Created", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: false},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("256")},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo registrar la entrada del miembro: %v", err), "Member")
	}
}

// onGuildMemberRemove logs the departure to the moderation log channel
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove, deps Deps) {
	logger.Info(fmt.Sprintf("📤 Miembro salió: %s de servidor %s", m.User.Username, m.GuildID), "Member")

	if deps.ModLog == nil {
		return
	}
	channelID, err := deps.ModLog.ChannelID(m.GuildID)
	if err != nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📤 Member Left",
		Color: 0xe74c3c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 User", Value: fmt.Sprintf("%s (%s)", m.User.Username, m.User.ID), Inline: true},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("256")},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo registrar la salida del miembro: %v", err), "Member")
	}
}

// findRoleByName returns the ID of the named role, or empty
func findRoleByName(s *discordgo.Session, guildID, name string) string {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return ""
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID
		}
	}
	return ""
}

// findTextChannel returns the first text channel matching any of the names
func findTextChannel(s *discordgo.Session, guildID string, names ...string) string {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return ""
	}
	for _, name := range names {
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
				return ch.ID
			}
		}
	}
	return ""
}
