package command

import (
	"fmt"

	"blacklist/internal/bot"
	"blacklist/internal/report"

	"github.com/bwmarrin/discordgo"
)

type SettingsCommand struct{}

func (c *SettingsCommand) Name() string        { return "settings" }
func (c *SettingsCommand) Description() string { return "Lists the server's current settings" }
func (c *SettingsCommand) Aliases() []string   { return []string{} }

func (c *SettingsCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if err := mc.Storage.EnsureGuild(mc.Event.GuildID); err != nil {
		return err
	}
	g := mc.Storage.Guild(mc.Event.GuildID)

	bot.MessageEmbed(mc.Session, mc.Event.ChannelID, &discordgo.MessageEmbed{
		Title: "Server settings",
		Color: report.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Incoming report channel", Value: channelOrNone(g.Incoming), Inline: true},
			{Name: "Blacklisted channel", Value: channelOrNone(g.Public), Inline: true},
			{Name: "New users channel", Value: channelOrNone(g.Alert), Inline: true},
		},
	})
	return nil
}

func init() {
	Register(ApplyMiddlewares(&SettingsCommand{}, WithGuildOnly()))
}
