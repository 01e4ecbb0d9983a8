package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// cancelWord aborts an intake session from any waiting state.
const cancelWord = "cancel"

type intakeState int

const (
	stateCollectTarget intakeState = iota
	stateCollectReason
	stateAwaitConfirm
)

type sessionKey struct {
	channelID string
	authorID  string
}

type session struct {
	key      sessionKey
	guildID  string
	reporter *discordgo.User
	input    chan *discordgo.MessageCreate
}

// StartIntake opens a conversational report session for the invoker. Banned
// invokers and banned guilds are rejected with an error reply and no session.
func (e *Engine) StartIntake(ctx context.Context, guildID, channelID string, reporter *discordgo.User) error {
	if e.store.IsBannedUser(reporter.ID) || e.store.IsBannedGuild(guildID) {
		e.respond(channelID, reporter, "you are not allowed to submit reports.", ColorError)
		return nil
	}

	key := sessionKey{channelID: channelID, authorID: reporter.ID}
	s := &session{
		key:      key,
		guildID:  guildID,
		reporter: reporter,
		input:    make(chan *discordgo.MessageCreate, 4),
	}

	e.mu.Lock()
	if _, exists := e.sessions[key]; exists {
		e.mu.Unlock()
		e.respond(channelID, reporter, "you already have a report in progress in this channel.", ColorError)
		return nil
	}
	e.sessions[key] = s
	e.mu.Unlock()

	go e.runSession(ctx, s)
	return nil
}

// HandleMessage routes an inbound message into a waiting session. It reports
// whether the message was consumed so the command router can skip it.
func (e *Engine) HandleMessage(m *discordgo.MessageCreate) bool {
	e.mu.Lock()
	s, ok := e.sessions[sessionKey{channelID: m.ChannelID, authorID: m.Author.ID}]
	if !ok && e.RelaxedAuthor {
		for k, cand := range e.sessions {
			if k.channelID == m.ChannelID {
				s, ok = cand, true
				break
			}
		}
	}
	e.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case s.input <- m:
	default:
		// Session is mid-transition and its buffer is full; drop rather
		// than block the gateway event handler.
	}
	return true
}

func (e *Engine) dropSession(key sessionKey) {
	e.mu.Lock()
	delete(e.sessions, key)
	e.mu.Unlock()
}

// runSession drives one intake conversation: collect target, collect reason,
// confirm, commit. Every waiting state shares the timeout/cancel contract;
// invalid input retries the same state with a fresh timeout window. Nothing
// is persisted before the commit.
func (e *Engine) runSession(ctx context.Context, s *session) {
	defer e.dropSession(s.key)

	e.respond(s.key.channelID, s.reporter,
		"who are you reporting? Mention them or paste their ID. Type `cancel` to abort.", ColorInfo)

	state := stateCollectTarget
	var target *discordgo.Member
	var reason string

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			e.respond(s.key.channelID, s.reporter, "report timed out.", ColorError)
			return
		case m := <-s.input:
			text := strings.TrimSpace(m.Content)
			if strings.EqualFold(text, cancelWord) {
				e.respond(s.key.channelID, s.reporter, "report cancelled.", ColorInfo)
				return
			}

			switch state {
			case stateCollectTarget:
				member, err := e.resolveMember(s.guildID, text)
				if err != nil {
					e.respond(s.key.channelID, s.reporter,
						"that doesn't resolve to a member of this server. Try again or type `cancel`.", ColorError)
					break
				}
				target = member
				state = stateCollectReason
				e.respond(s.key.channelID, s.reporter, "what is the reason for the report?", ColorInfo)

			case stateCollectReason:
				reason = text
				state = stateAwaitConfirm
				e.sendPreview(s, target, reason)

			case stateAwaitConfirm:
				switch strings.ToLower(text) {
				case "yes", "y":
					e.commit(ctx, s, target, reason)
					return
				case "no", "n":
					e.respond(s.key.channelID, s.reporter, "report cancelled.", ColorInfo)
					return
				default:
					e.respond(s.key.channelID, s.reporter, "answer `yes` or `no`.", ColorError)
				}
			}

			// Each retry or advance gets a fresh timeout window.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(e.timeout)
		}
	}
}

// resolveMember parses a mention or raw ID and requires a live member of the
// guild; anything else is retried by the caller.
func (e *Engine) resolveMember(guildID, input string) (*discordgo.Member, error) {
	id := strings.TrimSpace(input)
	id = strings.TrimPrefix(id, "<@")
	id = strings.TrimPrefix(id, "!")
	id = strings.TrimSuffix(id, ">")
	if id == "" {
		return nil, fmt.Errorf("empty member reference")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("not a member reference: %q", input)
		}
	}
	return e.gw.Member(guildID, id)
}

func (e *Engine) sendPreview(s *session, target *discordgo.Member, reason string) {
	embed := &discordgo.MessageEmbed{
		Title: "Report preview",
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Target", Value: fmt.Sprintf("%s (%s)", displayName(target), target.Mention()), Inline: true},
			{Name: "Reason", Value: truncate(reason, reasonDisplayLimit)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Reply yes to submit or no to cancel"},
	}
	if _, err := e.gw.SendEmbed(s.key.channelID, embed); err != nil {
		log.Printf("[WARN] Failed to send report preview: %v", err)
	}
}

// commit is the only place a report row is persisted.
func (e *Engine) commit(ctx context.Context, s *session, target *discordgo.Member, reason string) {
	rep := storage.Report{
		ID:       newReportID(),
		Reporter: s.reporter.ID,
		Guild:    s.guildID,
		Reported: target.User.ID,
		Reason:   reason,
	}
	if err := e.store.SubmitReport(rep); err != nil {
		log.Printf("[ERR] Failed to persist report: %v", err)
		e.respond(s.key.channelID, s.reporter, "something went wrong while saving the report.", ColorError)
		return
	}
	e.respond(s.key.channelID, s.reporter, "report submitted.", ColorOK)

	if err := e.Broadcast(ctx, rep, target); err != nil {
		log.Printf("[ERR] Failed to broadcast report %s: %v", rep.ID, err)
		e.respond(s.key.channelID, s.reporter, "the report was saved but could not be broadcast.", ColorError)
	}
}
