package audit

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/database"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/TrapoCloud/TrapoBotGo/pkg/mqtt"
	"github.com/bwmarrin/discordgo"
)

// ChannelSink posts audit embeds to the guild's moderation log channel,
// creating the channel (hidden from @everyone) if it does not exist yet.
type ChannelSink struct {
	session     *discordgo.Session
	channelName string
}

// NewChannelSink creates a ChannelSink posting to the named channel
func NewChannelSink(session *discordgo.Session, channelName string) *ChannelSink {
	return &ChannelSink{session: session, channelName: channelName}
}

// Log posts the entry as an embed to the mod-logs channel
func (s *ChannelSink) Log(entry models.AuditEntry) {
	channelID, err := s.logChannel(entry.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo obtener el canal de logs: %v", err), "Audit")
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "👤 Target", Value: fmt.Sprintf("%s (%s)", entry.TargetTag, entry.TargetID), Inline: true},
		{Name: "👮 Moderator", Value: fmt.Sprintf("%s (%s)", entry.Moderator, entry.ModeratorID), Inline: true},
		{Name: "📝 Reason", Value: entry.Reason, Inline: false},
	}
	for _, f := range entry.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🛡️ Moderation Action: %s", entry.Action),
		Color:     0xe67e22,
		Fields:    fields,
		Timestamp: entry.CreatedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Action: %s", entry.Action),
		},
	}

	if _, err := s.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando embed de auditoría: %v", err), "Audit")
	}
}

// ChannelID returns the moderation log channel for a guild, creating it if
// absent (used by the member join/leave log entries)
func (s *ChannelSink) ChannelID(guildID string) (string, error) {
	return s.logChannel(guildID)
}

// logChannel finds the moderation log channel, creating it if absent
func (s *ChannelSink) logChannel(guildID string) (string, error) {
	channels, err := s.session.GuildChannels(guildID)
	if err != nil {
		return "", err
	}

	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == s.channelName {
			return ch.ID, nil
		}
	}

	created, err := s.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: s.channelName,
		Type: discordgo.ChannelTypeGuildText,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   guildID, // @everyone role shares the guild ID
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
		},
	})
	if err != nil {
		return "", err
	}

	logger.Success("Canal de logs creado: "+s.channelName, "Audit")
	return created.ID, nil
}

// ArchiveSink appends entries to the Mongo audit archive
type ArchiveSink struct {
	service *database.AuditService
}

// NewArchiveSink creates an ArchiveSink over the given service
func NewArchiveSink(service *database.AuditService) *ArchiveSink {
	return &ArchiveSink{service: service}
}

// Log appends the entry to the archive
func (s *ArchiveSink) Log(entry models.AuditEntry) {
	s.service.Append(entry)
}

// TelemetrySink publishes entries to the MQTT moderation topic
type TelemetrySink struct {
	communicator *mqtt.MqttCommunicator
	topic        string
}

// NewTelemetrySink creates a TelemetrySink publishing to the given topic
func NewTelemetrySink(communicator *mqtt.MqttCommunicator, topic string) *TelemetrySink {
	return &TelemetrySink{communicator: communicator, topic: topic}
}

// Log publishes the entry as JSON telemetry
func (s *TelemetrySink) Log(entry models.AuditEntry) {
	if s.communicator == nil || !s.communicator.IsConnected() {
		return
	}
	if err := s.communicator.Publish(s.topic, entry); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo publicar telemetría de auditoría: %v", err), "Audit")
	}
}
