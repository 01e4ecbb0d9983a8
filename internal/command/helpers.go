package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// stripMention reduces a user or channel mention to its bare ID.
func stripMention(arg string) string {
	id := strings.TrimSpace(arg)
	id = strings.TrimPrefix(id, "<@")
	id = strings.TrimPrefix(id, "<#")
	id = strings.TrimPrefix(id, "!")
	id = strings.TrimSuffix(id, ">")
	return id
}

func isSnowflake(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseChannelArg accepts a channel mention or raw channel ID.
func parseChannelArg(arg string) (string, error) {
	id := stripMention(arg)
	if !isSnowflake(id) {
		return "", fmt.Errorf("not a channel reference: %q", arg)
	}
	return id, nil
}

// guildMember resolves a member from state, falling back to the API.
func guildMember(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	if m, err := s.State.Member(guildID, userID); err == nil && m != nil {
		return m, nil
	}
	return s.GuildMember(guildID, userID)
}

// memberFromArg resolves the first argument as a guild member, defaulting to
// the invoking author.
func memberFromArg(mc *MessageContext) (*discordgo.Member, error) {
	userID := mc.Event.Author.ID
	if len(mc.Args) > 0 {
		id := stripMention(mc.Args[0])
		if !isSnowflake(id) {
			return nil, fmt.Errorf("not a member reference: %q", mc.Args[0])
		}
		userID = id
	}
	return guildMember(mc.Session, mc.Event.GuildID, userID)
}

func channelOrNone(channelID string) string {
	if channelID == "" {
		return "None"
	}
	return "<#" + channelID + ">"
}
