package command

import "fmt"

type ReportCommand struct{}

func (c *ReportCommand) Name() string        { return "report" }
func (c *ReportCommand) Description() string { return "Report a user to every subscribed server" }
func (c *ReportCommand) Aliases() []string   { return []string{} }

func (c *ReportCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	return mc.Engine.StartIntake(mc.Ctx, mc.Event.GuildID, mc.Event.ChannelID, mc.Event.Author)
}

func init() {
	Register(ApplyMiddlewares(&ReportCommand{}, WithGuildOnly()))
}
