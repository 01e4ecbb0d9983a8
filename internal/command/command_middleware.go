package command

import (
	"blacklist/internal/bot"
	"blacklist/internal/config"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly rejects invocations outside a guild with an error reply.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if mc, ok := ctx.(*MessageContext); ok && mc.Event.GuildID == "" {
					bot.Error(mc.Session, mc.Event.ChannelID, mc.Event.Author, "this command only works in a server.")
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithDevOnly silently drops invocations from anyone but the configured
// developer.
func WithDevOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if mc, ok := ctx.(*MessageContext); ok && !config.IsDeveloper(mc.Config, mc.Event.Author.ID) {
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}
