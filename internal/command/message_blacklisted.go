package command

import (
	"fmt"

	"blacklist/internal/bot"
)

type BlacklistedCommand struct{}

func (c *BlacklistedCommand) Name() string { return "blacklisted" }
func (c *BlacklistedCommand) Description() string {
	return "Sets the channel where published reports show up"
}
func (c *BlacklistedCommand) Aliases() []string { return []string{} }

func (c *BlacklistedCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	channelID := ""
	if len(mc.Args) > 0 {
		var err error
		channelID, err = parseChannelArg(mc.Args[0])
		if err != nil {
			bot.Error(mc.Session, mc.Event.ChannelID, mc.Event.Author, "that doesn't look like a channel.")
			return nil
		}
	}
	if err := mc.Storage.SetPublic(mc.Event.GuildID, channelID); err != nil {
		return err
	}
	if channelID != "" {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author,
			fmt.Sprintf("channel for blacklisted reports set to <#%s>", channelID))
	} else {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author, "channel for blacklisted reports cleared")
	}
	return nil
}

func init() {
	Register(ApplyMiddlewares(&BlacklistedCommand{}, WithGuildOnly()))
}
