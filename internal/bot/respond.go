// Package bot holds small platform helpers shared by the command layer and
// the discord wiring.
package bot

import (
	"fmt"
	"log"

	"blacklist/internal/report"

	"github.com/bwmarrin/discordgo"
)

// Info sends a blue embed addressed to a user.
func Info(s *discordgo.Session, channelID string, user *discordgo.User, text string) {
	respond(s, channelID, user, text, report.ColorInfo)
}

// OK sends a green embed addressed to a user.
func OK(s *discordgo.Session, channelID string, user *discordgo.User, text string) {
	respond(s, channelID, user, text, report.ColorOK)
}

// Error sends a red embed addressed to a user.
func Error(s *discordgo.Session, channelID string, user *discordgo.User, text string) {
	respond(s, channelID, user, text, report.ColorError)
}

func respond(s *discordgo.Session, channelID string, user *discordgo.User, text string, color int) {
	_, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s %s", user.Username, text),
		Color:       color,
	})
	if err != nil {
		log.Printf("[WARN] Failed to respond in channel %s: %v", channelID, err)
	}
}

// MessageEmbed sends a bare embed to a channel.
func MessageEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("[WARN] Failed to send embed to channel %s: %v", channelID, err)
	}
}
