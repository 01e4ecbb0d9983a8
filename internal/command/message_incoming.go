package command

import (
	"fmt"

	"blacklist/internal/bot"
)

type IncomingCommand struct{}

func (c *IncomingCommand) Name() string        { return "incoming" }
func (c *IncomingCommand) Description() string { return "Sets the channel for incoming reports" }
func (c *IncomingCommand) Aliases() []string   { return []string{} }

func (c *IncomingCommand) Run(ctx interface{}) error {
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
	if err := mc.Storage.SetIncoming(mc.Event.GuildID, channelID); err != nil {
		return err
	}
	if channelID != "" {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author,
			fmt.Sprintf("channel for incoming reports set to <#%s>", channelID))
	} else {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author, "channel for incoming reports cleared")
	}
	return nil
}

func init() {
	Register(ApplyMiddlewares(&IncomingCommand{}, WithGuildOnly()))
}
