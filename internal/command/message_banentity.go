package command

import (
	"fmt"

	"blacklist/internal/bot"
)

// BanEntityCommand appends a user or guild to the local reporting blacklist.
// There is no removal command.
type BanEntityCommand struct{}

func (c *BanEntityCommand) Name() string        { return "banentity" }
func (c *BanEntityCommand) Description() string { return "Blacklists a user or server from reporting" }
func (c *BanEntityCommand) Aliases() []string   { return []string{} }

func (c *BanEntityCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if len(mc.Args) < 2 || (mc.Args[1] != "user" && mc.Args[1] != "guild") {
		bot.Error(mc.Session, mc.Event.ChannelID, mc.Event.Author, "usage: banentity <id> <user|guild>")
		return nil
	}
	id := stripMention(mc.Args[0])
	if !isSnowflake(id) {
		bot.Error(mc.Session, mc.Event.ChannelID, mc.Event.Author, "that doesn't look like an ID.")
		return nil
	}

	if err := mc.Storage.AddBanned(id, mc.Args[1] == "user"); err != nil {
		return err
	}
	bot.OK(mc.Session, mc.Event.ChannelID, mc.Event.Author,
		fmt.Sprintf("%s %s blacklisted from reporting", mc.Args[1], id))
	return nil
}

func init() {
	Register(ApplyMiddlewares(&BanEntityCommand{}, WithDevOnly()))
}
