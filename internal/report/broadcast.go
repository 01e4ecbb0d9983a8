package report

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Broadcast delivers one copy of a committed report to every guild with an
// incoming-report channel, recording each resulting message instance. One
// guild's unreachable channel is logged and skipped; it never aborts
// delivery to the rest.
func (e *Engine) Broadcast(ctx context.Context, rep storage.Report, target *discordgo.Member) error {
	_, banned, err := e.rep.Lookup(ctx, rep.Reported)
	if err != nil {
		return fmt.Errorf("reputation lookup failed: %w", err)
	}

	// Prior reports are counted before this report counts against the user.
	prior := 0
	for _, r := range e.store.ReportsFor(rep.Reported) {
		if r.ID != rep.ID {
			prior++
		}
	}

	embed := buildBroadcastEmbed(rep, target, banned, prior)

	for _, g := range e.store.Guilds() {
		if g.Incoming == "" {
			continue
		}
		msgID, err := e.gw.SendEmbed(g.Incoming, embed)
		if err != nil {
			log.Printf("[WARN] Skipping guild %s: failed to deliver report %s: %v", g.ID, rep.ID, err)
			continue
		}
		if err := e.store.RecordInstance(g.ID, msgID, rep.ID); err != nil {
			log.Printf("[ERR] Failed to record instance for report %s in guild %s: %v", rep.ID, g.ID, err)
			continue
		}
		for _, control := range controlOrder {
			if err := e.gw.React(g.Incoming, msgID, control); err != nil {
				log.Printf("[WARN] Failed to attach %s control in guild %s: %v", control, g.ID, err)
			}
		}
	}
	return nil
}

func buildBroadcastEmbed(rep storage.Report, target *discordgo.Member, banned bool, prior int) *discordgo.MessageEmbed {
	priorText := "any"
	if prior > 0 {
		priorText = strconv.Itoa(prior)
	}
	return &discordgo.MessageEmbed{
		Title:       "Incoming Report",
		Color:       ColorError,
		Description: fmt.Sprintf("%s has been reported.", target.Mention()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reported", Value: fmt.Sprintf("%s (%s)", displayName(target), target.Mention()), Inline: true},
			{Name: "Reporter", Value: mention(rep.Reporter), Inline: true},
			{Name: "Globally Banned", Value: yesNo(banned), Inline: true},
			{Name: "Previous Reports", Value: priorText, Inline: true},
			{Name: "Reason", Value: truncate(rep.Reason, reasonDisplayLimit)},
			{Name: "Actions", Value: controlsLegend()},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Report " + rep.ID},
	}
}
