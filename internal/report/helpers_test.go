package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"blacklist/internal/reputation"
	"blacklist/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type sentEmbed struct {
	channelID string
	embed     *discordgo.MessageEmbed
}

// fakeGateway records every platform call the engine makes.
type fakeGateway struct {
	mu           sync.Mutex
	nextID       int
	sent         []sentEmbed
	messages     map[string]*discordgo.Message
	channelOf    map[string]string
	reactions    map[string][]string
	retracted    []string // "message/emoji/user"
	clearedEmoji []string // "message/emoji"
	clearedAll   []string
	members      map[string]*discordgo.Member // "guild/user"
	kicked       []string                     // "guild/user"
	banned       []string                     // "guild/user"
	failChannels map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		messages:     make(map[string]*discordgo.Message),
		channelOf:    make(map[string]string),
		reactions:    make(map[string][]string),
		members:      make(map[string]*discordgo.Member),
		failChannels: make(map[string]bool),
	}
}

func (g *fakeGateway) addMember(guildID string, member *discordgo.Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[guildID+"/"+member.User.ID] = member
}

func (g *fakeGateway) addMessage(channelID, messageID string, embed *discordgo.MessageEmbed) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.messages[messageID] = &discordgo.Message{ID: messageID, Embeds: []*discordgo.MessageEmbed{embed}}
	g.channelOf[messageID] = channelID
}

func (g *fakeGateway) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failChannels[channelID] {
		return "", fmt.Errorf("channel %s unreachable", channelID)
	}
	g.nextID++
	id := fmt.Sprintf("m%d", g.nextID)
	copied := *embed
	g.sent = append(g.sent, sentEmbed{channelID: channelID, embed: &copied})
	g.messages[id] = &discordgo.Message{ID: id, Embeds: []*discordgo.MessageEmbed{&copied}}
	g.channelOf[id] = channelID
	return id, nil
}

func (g *fakeGateway) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.messages[messageID] = &discordgo.Message{ID: messageID, Embeds: []*discordgo.MessageEmbed{embed}}
	return nil
}

func (g *fakeGateway) Message(channelID, messageID string) (*discordgo.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.messages[messageID]
	if !ok {
		return nil, fmt.Errorf("unknown message %s", messageID)
	}
	return m, nil
}

func (g *fakeGateway) React(channelID, messageID, emoji string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reactions[messageID] = append(g.reactions[messageID], emoji)
	return nil
}

func (g *fakeGateway) RemoveReaction(channelID, messageID, emoji, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.retracted = append(g.retracted, messageID+"/"+emoji+"/"+userID)
	return nil
}

func (g *fakeGateway) ClearReaction(channelID, messageID, emoji string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearedEmoji = append(g.clearedEmoji, messageID+"/"+emoji)
	return nil
}

func (g *fakeGateway) ClearAllReactions(channelID, messageID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearedAll = append(g.clearedAll, messageID)
	return nil
}

func (g *fakeGateway) Member(guildID, userID string) (*discordgo.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.members[guildID+"/"+userID]
	if !ok {
		return nil, fmt.Errorf("no such member %s in guild %s", userID, guildID)
	}
	return m, nil
}

func (g *fakeGateway) Kick(guildID, userID, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.kicked = append(g.kicked, guildID+"/"+userID)
	return nil
}

func (g *fakeGateway) Ban(guildID, userID, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.banned = append(g.banned, guildID+"/"+userID)
	return nil
}

// sentTo returns descriptions of every embed delivered to a channel.
func (g *fakeGateway) sentTo(channelID string) []*discordgo.MessageEmbed {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*discordgo.MessageEmbed
	for _, s := range g.sent {
		if s.channelID == channelID {
			out = append(out, s.embed)
		}
	}
	return out
}

func (g *fakeGateway) sentContaining(substr string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range g.sent {
		if containsText(s.embed, substr) {
			return true
		}
	}
	return false
}

func containsText(e *discordgo.MessageEmbed, substr string) bool {
	if strings.Contains(e.Description, substr) || strings.Contains(e.Title, substr) {
		return true
	}
	for _, f := range e.Fields {
		if strings.Contains(f.Name, substr) || strings.Contains(f.Value, substr) {
			return true
		}
	}
	return false
}

type fakePerms struct {
	mu      sync.Mutex
	granted map[string]int64 // "guild/user" -> permission bits
}

func newFakePerms() *fakePerms {
	return &fakePerms{granted: make(map[string]int64)}
}

func (p *fakePerms) grant(guildID, userID string, perm int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted[guildID+"/"+userID] |= perm
}

func (p *fakePerms) HasPermission(guildID, channelID, userID string, permission int64) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted[guildID+"/"+userID]&permission != 0, nil
}

type stubChecker struct {
	mu      sync.Mutex
	calls   int
	verdict bool
	err     error
}

func (c *stubChecker) Check(ctx context.Context, userID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.verdict, c.err
}

type testEnv struct {
	store   *storage.Storage
	gw      *fakeGateway
	perms   *fakePerms
	checker *stubChecker
	engine  *Engine
}

func newTestEnv(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gw := newFakeGateway()
	perms := newFakePerms()
	checker := &stubChecker{}
	engine := NewEngine(store, reputation.NewCache(checker), gw, perms, timeout)
	return &testEnv{store: store, gw: gw, perms: perms, checker: checker, engine: engine}
}

func testUser(id, name string) *discordgo.User {
	return &discordgo.User{ID: id, Username: name}
}

func testMember(guildID, id, name string) *discordgo.Member {
	return &discordgo.Member{GuildID: guildID, User: testUser(id, name)}
}

func inboundMessage(channelID, authorID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: channelID,
		Author:    &discordgo.User{ID: authorID},
		Content:   content,
	}}
}
