package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"blacklist/internal/report"
	"blacklist/internal/reputation"
	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// youngAccountAge is the account age under which a joining member is always
// flagged.
const youngAccountAge = 7 * 24 * time.Hour

// alertSender is the one platform call the watcher makes. The session gateway
// implements it; tests use a fake.
type alertSender interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error)
}

// memberWatcher warns a guild's alert channel about suspicious arrivals:
// brand-new accounts, users with reports on file, or users the reputation
// service flags.
type memberWatcher struct {
	store *storage.Storage
	rep   *reputation.Cache
	send  alertSender
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	b.watch.memberJoined(b.ctx, e.GuildID, e.Member)
}

// memberJoined inspects one arrival and alerts when it looks suspicious.
// Guilds without an alert channel and bot accounts are skipped outright.
func (w *memberWatcher) memberJoined(ctx context.Context, guildID string, m *discordgo.Member) {
	if m == nil || m.User == nil || m.User.Bot {
		return
	}
	if err := w.store.EnsureGuild(guildID); err != nil {
		log.Printf("[ERR] Failed to ensure guild %s: %v", guildID, err)
		return
	}
	alert := w.store.Guild(guildID).Alert
	if alert == "" {
		return
	}

	created, err := discordgo.SnowflakeTimestamp(m.User.ID)
	if err != nil {
		log.Printf("[WARN] Failed to read account timestamp for %s: %v", m.User.ID, err)
		return
	}
	reports := w.store.ReportsFor(m.User.ID)

	age, banned, err := w.rep.Lookup(ctx, m.User.ID)
	if err != nil {
		log.Printf("[WARN] Reputation lookup failed for joining member %s: %v", m.User.ID, err)
		return
	}

	if time.Since(created) >= youngAccountAge && len(reports) == 0 && !banned {
		return
	}

	joinedText := ""
	if !m.JoinedAt.IsZero() {
		joinedText = fmt.Sprintf(" They joined the server **%s**, on **%s**.",
			humanize.Time(m.JoinedAt), m.JoinedAt.Format("2 January 2006"))
	}
	bannedText := "not globally banned"
	if banned {
		bannedText = "globally banned"
	}
	checkedText := "just now"
	if age > 0 {
		checkedText = humanize.Time(time.Now().Add(-age))
	}
	reportsText := "any"
	if len(reports) > 0 {
		reportsText = strconv.Itoa(len(reports))
	}
	haveText := "do not have"
	if len(reports) > 0 {
		haveText = "have"
	}

	_, err = w.send.SendEmbed(alert, &discordgo.MessageEmbed{
		Title: "Suspicious Account Joined",
		Color: report.ColorError,
		Description: fmt.Sprintf(
			"%s's account was created **%s**, on **%s**.%s They are **%s**, last checked **%s**. "+
				"They %s **%s** reports.",
			m.User.Mention(), humanize.Time(created), created.Format("2 January 2006"), joinedText,
			bannedText, checkedText, haveText, reportsText,
		),
	})
	if err != nil {
		log.Printf("[WARN] Failed to send join alert to channel %s: %v", alert, err)
	}
}
