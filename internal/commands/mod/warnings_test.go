package mod

import (
	"testing"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

func messageContext(author *discordgo.User, mentions ...*discordgo.User) *discord.CommandContext {
	return &discord.CommandContext{
		Message: &discordgo.MessageCreate{
			Message: &discordgo.Message{
				Author:   author,
				Mentions: mentions,
			},
		},
	}
}

func TestWarningsTargetUsesMention(t *testing.T) {
	author := &discordgo.User{ID: "mod1", Username: "staff"}
	mentioned := &discordgo.User{ID: "user1", Username: "alice"}

	target := warningsTarget(messageContext(author, mentioned))
	if target == nil || target.ID != "user1" {
		t.Errorf("Expected the mentioned user, got %+v", target)
	}
}

func TestWarningsTargetFallsBackToAuthor(t *testing.T) {
	author := &discordgo.User{ID: "member1", Username: "alice"}

	target := warningsTarget(messageContext(author))
	if target == nil || target.ID != "member1" {
		t.Errorf("Expected the invoking author, got %+v", target)
	}
}

func TestWarningsCommandIsOpenToAllMembers(t *testing.T) {
	cmd := createWarningsCommand(Deps{})
	if cmd.UserPermissions != 0 {
		t.Errorf("Expected no permission requirement, got %d", cmd.UserPermissions)
	}
	if cmd.OwnerOnly {
		t.Error("The command must not be owner-only")
	}
}
