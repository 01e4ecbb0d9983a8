package command

import (
	"fmt"

	"blacklist/internal/bot"
	"blacklist/internal/report"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Lists available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{} }

func (c *HelpCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	var fields []*discordgo.MessageEmbedField
	for _, cmd := range All() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  mc.Config.CommandPrefix + cmd.Name(),
			Value: cmd.Description(),
		})
	}

	bot.MessageEmbed(mc.Session, mc.Event.ChannelID, &discordgo.MessageEmbed{
		Title:  "Commands",
		Color:  report.ColorInfo,
		Fields: fields,
	})
	return nil
}

func init() {
	Register(&HelpCommand{})
}
