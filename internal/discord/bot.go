package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"blacklist/internal/bot"
	"blacklist/internal/command"
	"blacklist/internal/config"
	"blacklist/internal/report"
	"blacklist/internal/reputation"
	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const connectAttempts = 6

// Bot wires the gateway session to the command registry and the report
// workflow engine.
type Bot struct {
	dg     *discordgo.Session
	cfg    *config.Config
	store  *storage.Storage
	rep    *reputation.Cache
	engine *report.Engine
	watch  *memberWatcher
	ctx    context.Context
}

func NewBot(cfg *config.Config, store *storage.Storage, rep *reputation.Cache) *Bot {
	return &Bot{
		cfg:   cfg,
		store: store,
		rep:   rep,
	}
}

// Run connects to the gateway and blocks until the context is cancelled.
// Connecting retries with exponential backoff before giving up.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx
	b.engine = report.NewEngine(b.store, b.rep, &sessionGateway{s: dg}, &sessionPerms{s: dg}, b.cfg.IntakeTimeout)
	b.watch = &memberWatcher{store: b.store, rep: b.rep, send: &sessionGateway{s: dg}}

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onMessageReactionAdd)
	dg.AddHandler(b.onGuildMemberAdd)

	if err := b.open(ctx); err != nil {
		return err
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) open(ctx context.Context) error {
	var lastErr error
	for i := 0; i < connectAttempts; i++ {
		lastErr = b.dg.Open()
		if lastErr == nil {
			return nil
		}
		wait := time.Duration(1<<(i+1)) * time.Second
		log.Printf("[WARN] Connection %d/%d failed: %v", i+1, connectAttempts, lastErr)
		log.Printf("[WARN] Waiting %s before reconnecting", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("failed to connect after %d attempts: %w", connectAttempts, lastErr)
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ Bot %v is running in %d guilds.", r.User.Username, len(r.Guilds))
}

// onGuildCreate makes sure every guild the bot can see has a settings row.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if err := b.store.EnsureGuild(g.ID); err != nil {
		log.Printf("[ERR] Failed to ensure guild %s: %v", g.ID, err)
	}
}

// onMessageCreate feeds waiting intake sessions first, then routes prefix
// commands.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if b.engine.HandleMessage(m) {
		return
	}

	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, b.cfg.CommandPrefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(content, b.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}
	cmd, ok := command.Get(strings.ToLower(fields[0]))
	if !ok {
		return
	}

	ctx := &command.MessageContext{
		Ctx:        b.ctx,
		Session:    s,
		Event:      m,
		Args:       fields[1:],
		Storage:    b.store,
		Engine:     b.engine,
		Reputation: b.rep,
		Config:     b.cfg,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running command:", err)
		bot.Error(s, m.ChannelID, m.Author, "something went wrong running that command.")
	}
}

// onMessageReactionAdd hands reaction signals to the action dispatcher. The
// bot's own control reactions are filtered out.
func (b *Bot) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	if err := b.engine.HandleReaction(r); err != nil {
		log.Println("[ERR] Error dispatching reaction:", err)
	}
}
