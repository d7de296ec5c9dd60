package nickname

import (
	"github.com/bwmarrin/discordgo"
)

// memberPageSize is the Discord maximum for one member-list page
const memberPageSize = 1000

// DiscordDirectory implements MemberDirectory over a discordgo session
type DiscordDirectory struct {
	session *discordgo.Session
}

// NewDiscordDirectory creates a directory using the given session
func NewDiscordDirectory(session *discordgo.Session) *DiscordDirectory {
	return &DiscordDirectory{session: session}
}

// Members pages through the full guild member list
func (d *DiscordDirectory) Members(guildID string) ([]*discordgo.Member, error) {
	var all []*discordgo.Member
	after := ""

	for {
		page, err := d.session.GuildMembers(guildID, after, memberPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < memberPageSize {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// OwnerID returns the guild owner's user ID, preferring the state cache
func (d *DiscordDirectory) OwnerID(guildID string) (string, error) {
	if guild, err := d.session.State.Guild(guildID); err == nil && guild.OwnerID != "" {
		return guild.OwnerID, nil
	}
	guild, err := d.session.Guild(guildID)
	if err != nil {
		return "", err
	}
	return guild.OwnerID, nil
}

// SetNickname changes the member's guild nickname
func (d *DiscordDirectory) SetNickname(guildID, userID, nick string) error {
	return d.session.GuildMemberNickname(guildID, userID, nick)
}
