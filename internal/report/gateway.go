package report

import "github.com/bwmarrin/discordgo"

// Gateway is the slice of the chat platform the workflow engine needs.
// internal/discord provides the session-backed implementation; tests use
// fakes.
type Gateway interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
	Message(channelID, messageID string) (*discordgo.Message, error)
	React(channelID, messageID, emoji string) error
	RemoveReaction(channelID, messageID, emoji, userID string) error
	ClearReaction(channelID, messageID, emoji string) error
	ClearAllReactions(channelID, messageID string) error
	Member(guildID, userID string) (*discordgo.Member, error)
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error
}

// PermissionChecker answers whether a member holds a permission in the
// channel where they acted.
type PermissionChecker interface {
	HasPermission(guildID, channelID, userID string, permission int64) (bool, error)
}

// Embed colors, matching the original info/ok/error responder palette.
const (
	ColorInfo  = 0x3498DB
	ColorOK    = 0x2ECC71
	ColorError = 0xE74C3C
)

// Resolution controls attached to every broadcast instance.
const (
	ControlKick    = "👢"
	ControlIgnore  = "🚫"
	ControlBan     = "🔨"
	ControlPublish = "📢"
)

var controlOrder = []string{ControlKick, ControlIgnore, ControlBan, ControlPublish}

var controlPermissions = map[string]int64{
	ControlKick:    discordgo.PermissionKickMembers,
	ControlIgnore:  discordgo.PermissionModerateMembers,
	ControlBan:     discordgo.PermissionBanMembers,
	ControlPublish: discordgo.PermissionBanMembers,
}
