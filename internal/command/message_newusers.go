package command

import (
	"fmt"

	"blacklist/internal/bot"
)

type NewUsersCommand struct{}

func (c *NewUsersCommand) Name() string { return "newusers" }
func (c *NewUsersCommand) Description() string {
	return "Sets the channel for suspicious new-member alerts"
}
func (c *NewUsersCommand) Aliases() []string { return []string{} }

func (c *NewUsersCommand) Run(ctx interface{}) error {
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
	if err := mc.Storage.SetAlert(mc.Event.GuildID, channelID); err != nil {
		return err
	}
	if channelID != "" {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author,
			fmt.Sprintf("channel for new user alerts set to <#%s>", channelID))
	} else {
		bot.Info(mc.Session, mc.Event.ChannelID, mc.Event.Author, "channel for new user alerts cleared")
	}
	return nil
}

func init() {
	Register(ApplyMiddlewares(&NewUsersCommand{}, WithGuildOnly()))
}
