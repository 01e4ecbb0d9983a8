package report

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type resolvedKey struct {
	messageID string
	control   string
}

// claim marks a control as fired for one message instance. The first caller
// wins; a second trigger of the same control is a no-op.
func (e *Engine) claim(messageID, control string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	k := resolvedKey{messageID: messageID, control: control}
	if _, done := e.resolved[k]; done {
		return false
	}
	e.resolved[k] = struct{}{}
	return true
}

func (e *Engine) claimAll(messageID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, control := range controlOrder {
		e.resolved[resolvedKey{messageID: messageID, control: control}] = struct{}{}
	}
}

// HandleReaction resolves one broadcast instance in response to a reaction.
// Signals on unrelated messages, unknown emblems and already-fired controls
// are ignored. An actor without the control's permission has their reaction
// retracted silently; no effect, no reply. Sibling instances of the same
// report in other guilds stay independently actionable.
func (e *Engine) HandleReaction(r *discordgo.MessageReactionAdd) error {
	inst, ok := e.store.InstanceFor(r.MessageID)
	if !ok {
		return nil
	}
	rep, ok := e.store.ReportByID(inst.Report)
	if !ok {
		return nil
	}

	control := r.Emoji.Name
	required, ok := controlPermissions[control]
	if !ok {
		return nil
	}

	allowed, err := e.perms.HasPermission(r.GuildID, r.ChannelID, r.UserID, required)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		if err := e.gw.RemoveReaction(r.ChannelID, r.MessageID, control, r.UserID); err != nil {
			log.Printf("[WARN] Failed to retract reaction on %s: %v", r.MessageID, err)
		}
		return nil
	}

	if !e.claim(r.MessageID, control) {
		return nil
	}
	actor := e.actorName(r.GuildID, r.UserID)

	switch control {
	case ControlIgnore:
		e.claimAll(r.MessageID)
		if err := e.gw.ClearAllReactions(r.ChannelID, r.MessageID); err != nil {
			log.Printf("[WARN] Failed to clear controls on %s: %v", r.MessageID, err)
		}
		return e.annotate(r.ChannelID, r.MessageID, "Ignored by "+actor)

	case ControlKick:
		e.clearControl(r.ChannelID, r.MessageID, control)
		if _, err := e.gw.Member(r.GuildID, rep.Reported); err == nil {
			if err := e.gw.Kick(r.GuildID, rep.Reported, "Blacklist report "+rep.ID); err != nil {
				return fmt.Errorf("kick failed: %w", err)
			}
		}
		return e.annotate(r.ChannelID, r.MessageID, "Kicked by "+actor)

	case ControlBan:
		e.clearControl(r.ChannelID, r.MessageID, control)
		if err := e.gw.Ban(r.GuildID, rep.Reported, "Blacklist report "+rep.ID); err != nil {
			return fmt.Errorf("ban failed: %w", err)
		}
		return e.annotate(r.ChannelID, r.MessageID, "Banned by "+actor)

	case ControlPublish:
		e.clearControl(r.ChannelID, r.MessageID, control)
		if err := e.store.EnsureGuild(r.GuildID); err != nil {
			return err
		}
		if public := e.store.Guild(r.GuildID).Public; public != "" {
			embed := &discordgo.MessageEmbed{
				Title:       "Blacklisted User",
				Color:       ColorError,
				Description: fmt.Sprintf("%s has been blacklisted.", mention(rep.Reported)),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Reason", Value: truncate(rep.Reason, reasonDisplayLimit)},
				},
				Footer: &discordgo.MessageEmbedFooter{Text: "Report " + rep.ID},
			}
			if _, err := e.gw.SendEmbed(public, embed); err != nil {
				log.Printf("[WARN] Failed to publish report %s in guild %s: %v", rep.ID, r.GuildID, err)
			}
		}
		return e.annotate(r.ChannelID, r.MessageID, "Published by "+actor)
	}
	return nil
}

// clearControl removes one control emblem from an instance before its effect
// runs, so the control cannot re-fire.
func (e *Engine) clearControl(channelID, messageID, control string) {
	if err := e.gw.ClearReaction(channelID, messageID, control); err != nil {
		log.Printf("[WARN] Failed to clear %s control on %s: %v", control, messageID, err)
	}
}

// annotate appends the outcome to the instance body.
func (e *Engine) annotate(channelID, messageID, note string) error {
	msg, err := e.gw.Message(channelID, messageID)
	if err != nil {
		return fmt.Errorf("failed to fetch instance message: %w", err)
	}
	if len(msg.Embeds) == 0 {
		return nil
	}
	embed := msg.Embeds[0]
	embed.Description = strings.TrimSpace(embed.Description + "\n\n**" + note + "**")
	return e.gw.EditEmbed(channelID, messageID, embed)
}

func (e *Engine) actorName(guildID, userID string) string {
	if m, err := e.gw.Member(guildID, userID); err == nil {
		return displayName(m)
	}
	return mention(userID)
}
