// Package report implements the report and moderation workflow: the
// conversational intake state machine, the per-guild broadcast fan-out and
// the reaction-driven action dispatcher.
package report

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"blacklist/internal/reputation"
	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// DefaultTimeout is the wait budget for each intake step.
const DefaultTimeout = 60 * time.Second

// reasonDisplayLimit caps how much of a reason is rendered; the stored
// reason keeps the full text.
const reasonDisplayLimit = 1000

// Engine owns the intake sessions and the per-instance resolution state.
type Engine struct {
	store   *storage.Storage
	rep     *reputation.Cache
	gw      Gateway
	perms   PermissionChecker
	timeout time.Duration

	// RelaxedAuthor lets any message in a session's channel feed the
	// session instead of only the invoker's. Off by default.
	RelaxedAuthor bool

	mu       sync.Mutex
	sessions map[sessionKey]*session
	resolved map[resolvedKey]struct{}
}

func NewEngine(store *storage.Storage, rep *reputation.Cache, gw Gateway, perms PermissionChecker, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		store:    store,
		rep:      rep,
		gw:       gw,
		perms:    perms,
		timeout:  timeout,
		sessions: make(map[sessionKey]*session),
		resolved: make(map[resolvedKey]struct{}),
	}
}

// respond sends an info/ok/error embed addressed to a user, in the
// "{username} {message}" register of the original responder.
func (e *Engine) respond(channelID string, user *discordgo.User, text string, color int) {
	_, err := e.gw.SendEmbed(channelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s %s", user.Username, text),
		Color:       color,
	})
	if err != nil {
		log.Printf("[WARN] Failed to respond in channel %s: %v", channelID, err)
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// displayName prefers the guild nick over the account username.
func displayName(m *discordgo.Member) string {
	if m == nil {
		return "unknown"
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return "unknown"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func controlsLegend() string {
	parts := make([]string, 0, len(controlOrder))
	names := map[string]string{
		ControlKick:    "kick",
		ControlIgnore:  "ignore",
		ControlBan:     "ban",
		ControlPublish: "publish",
	}
	for _, c := range controlOrder {
		parts = append(parts, c+" "+names[c])
	}
	return strings.Join(parts, " · ")
}
