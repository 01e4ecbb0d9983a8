package command

import (
	"context"

	"blacklist/internal/config"
	"blacklist/internal/report"
	"blacklist/internal/reputation"
	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Run(ctx interface{}) error
}

// MessageContext is handed to every prefix command.
type MessageContext struct {
	Ctx        context.Context
	Session    *discordgo.Session
	Event      *discordgo.MessageCreate
	Args       []string
	Storage    *storage.Storage
	Engine     *report.Engine
	Reputation *reputation.Cache
	Config     *config.Config
}
