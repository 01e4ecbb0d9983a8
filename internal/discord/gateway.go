package discord

import (
	"github.com/bwmarrin/discordgo"
)

// sessionGateway adapts the discordgo session to the report engine's
// Gateway.
type sessionGateway struct {
	s *discordgo.Session
}

func (g *sessionGateway) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	m, err := g.s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (g *sessionGateway) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := g.s.ChannelMessageEditEmbed(channelID, messageID, embed)
	return err
}

func (g *sessionGateway) Message(channelID, messageID string) (*discordgo.Message, error) {
	return g.s.ChannelMessage(channelID, messageID)
}

func (g *sessionGateway) React(channelID, messageID, emoji string) error {
	return g.s.MessageReactionAdd(channelID, messageID, emoji)
}

func (g *sessionGateway) RemoveReaction(channelID, messageID, emoji, userID string) error {
	return g.s.MessageReactionRemove(channelID, messageID, emoji, userID)
}

func (g *sessionGateway) ClearReaction(channelID, messageID, emoji string) error {
	return g.s.MessageReactionsRemoveEmoji(channelID, messageID, emoji)
}

func (g *sessionGateway) ClearAllReactions(channelID, messageID string) error {
	return g.s.MessageReactionsRemoveAll(channelID, messageID)
}

func (g *sessionGateway) Member(guildID, userID string) (*discordgo.Member, error) {
	if m, err := g.s.State.Member(guildID, userID); err == nil && m != nil {
		return m, nil
	}
	return g.s.GuildMember(guildID, userID)
}

func (g *sessionGateway) Kick(guildID, userID, reason string) error {
	return g.s.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (g *sessionGateway) Ban(guildID, userID, reason string) error {
	return g.s.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// sessionPerms answers member permission checks for the dispatcher.
// Administrators implicitly pass every check.
type sessionPerms struct {
	s *discordgo.Session
}

func (p *sessionPerms) HasPermission(guildID, channelID, userID string, permission int64) (bool, error) {
	perms, err := p.s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, err
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&permission != 0, nil
}
