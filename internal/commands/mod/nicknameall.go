// Package mod - !nicknameall command
package mod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/nickname"
	"github.com/TrapoCloud/TrapoBotGo/pkg/config"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createNicknameAllCommand creates the !nicknameall command
func createNicknameAllCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"nicknameall",
		"Apply the community nickname prefix to every member",
		"mod",
		nicknameAllHandler(deps),
	).WithUsage("nicknameall [force]").
		WithUserPermissions(discordgo.PermissionAdministrator)
}

// nicknameAllHandler handles the !nicknameall command. The walk runs in the
// background; the status embed is edited in place as progress arrives.
func nicknameAllHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		mode := models.MigrationNormal
		if strings.EqualFold(ctx.Arg(0), "force") {
			mode = models.MigrationForce
		}

		if deps.Engine.Running(ctx.Message.GuildID) {
			return ctx.Reply("⏳ A nickname migration is already running for this server.")
		}

		prefix := config.Get().NicknamePrefix
		status, err := ctx.SendEmbed(&discordgo.MessageEmbed{
			Title:       "📝 Nickname Migration Started",
			Color:       0x3498db,
			Description: fmt.Sprintf("Applying the `%s` prefix to all members (mode: **%s**). This may take a while.", prefix, mode),
			Timestamp:   time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		req := nickname.RunRequest{
			GuildID:      ctx.Message.GuildID,
			GuildName:    guildName(ctx),
			Mode:         mode,
			ModeratorID:  ctx.Author().ID,
			ModeratorTag: ctx.Author().Username,
			Sink:         &messageProgressSink{ctx: ctx, messageID: status.ID, prefix: prefix},
		}

		go func() {
			if _, err := deps.Engine.Run(context.Background(), req); err != nil {
				if errors.Is(err, nickname.ErrRunInProgress) {
					ctx.Reply("⏳ A nickname migration is already running for this server.")
					return
				}
				logger.Error(fmt.Sprintf("Migración de apodos fallida en %s: %v", req.GuildID, err), "Commands")
				ctx.EditEmbed(status.ID, &discordgo.MessageEmbed{
					Title:       "❌ Nickname Migration Failed",
					Color:       0xe74c3c,
					Description: fmt.Sprintf("The migration stopped early: %v", err),
					Timestamp:   time.Now().Format(time.RFC3339),
				})
			}
		}()

		return nil
	}
}

// messageProgressSink edits the status embed as the run advances
type messageProgressSink struct {
	ctx       *discord.CommandContext
	messageID string
	prefix    string
}

// Publish rewrites the status embed with the current counters
func (s *messageProgressSink) Publish(run models.MigrationRun, final bool) {
	embed := &discordgo.MessageEmbed{
		Title: "📝 Nickname Migration In Progress",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👥 Processed", Value: fmt.Sprintf("%d / %d", run.Processed, run.Total), Inline: true},
			{Name: "✅ Updated", Value: fmt.Sprintf("%d", run.Updated), Inline: true},
			{Name: "⏭️ Skipped", Value: fmt.Sprintf("%d", run.Skipped), Inline: true},
			{Name: "❌ Failed", Value: fmt.Sprintf("%d", run.Failed), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if final {
		embed.Title = "✅ Nickname Migration Complete"
		embed.Color = 0x2ecc71
		embed.Description = fmt.Sprintf("The `%s` prefix rollout finished.", s.prefix)
	} else if eta := run.EstimatedRemaining(); eta > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Estimated time remaining: ~%d min", eta),
		}
	}

	if err := s.ctx.EditEmbed(s.messageID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo editar el embed de progreso: %v", err), "Commands")
	}
}
