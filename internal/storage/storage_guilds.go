package storage

import "fmt"

// GuildSettings is one guild's broadcast routing configuration. An empty
// channel ID means the feature is disabled for that guild.
type GuildSettings struct {
	ID       string
	Incoming string // channel receiving broadcast report copies
	Public   string // channel for published (blacklisted) reports
	Alert    string // channel for suspicious new-member alerts
}

// EnsureGuild idempotently creates an all-disabled settings row.
func (s *Storage) EnsureGuild(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureGuildLocked(guildID)
}

func (s *Storage) ensureGuildLocked(guildID string) error {
	if _, ok := s.guilds[guildID]; ok {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO guilds (id, incoming, public, warn_incoming) VALUES (?, '', '', '')`, guildID)
	if err != nil {
		return fmt.Errorf("failed to insert guild %s: %w", guildID, err)
	}
	s.guilds[guildID] = GuildSettings{ID: guildID}
	return nil
}

// SetIncoming sets or clears (empty channelID) the incoming-report channel.
func (s *Storage) SetIncoming(guildID, channelID string) error {
	return s.setChannel(guildID, "incoming", channelID)
}

// SetPublic sets or clears the public/blacklist channel.
func (s *Storage) SetPublic(guildID, channelID string) error {
	return s.setChannel(guildID, "public", channelID)
}

// SetAlert sets or clears the new-member alert channel.
func (s *Storage) SetAlert(guildID, channelID string) error {
	return s.setChannel(guildID, "warn_incoming", channelID)
}

func (s *Storage) setChannel(guildID, column, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureGuildLocked(guildID); err != nil {
		return err
	}

	var query string
	switch column {
	case "incoming":
		query = `UPDATE guilds SET incoming=? WHERE id=?`
	case "public":
		query = `UPDATE guilds SET public=? WHERE id=?`
	case "warn_incoming":
		query = `UPDATE guilds SET warn_incoming=? WHERE id=?`
	default:
		return fmt.Errorf("unknown guild settings column %q", column)
	}
	if _, err := s.db.Exec(query, channelID, guildID); err != nil {
		return fmt.Errorf("failed to update guild %s: %w", guildID, err)
	}

	g := s.guilds[guildID]
	switch column {
	case "incoming":
		g.Incoming = channelID
	case "public":
		g.Public = channelID
	case "warn_incoming":
		g.Alert = channelID
	}
	s.guilds[guildID] = g
	return nil
}

// Guild returns the settings for a guild. A guild with no row behaves as
// all-disabled; reading never creates the row.
func (s *Storage) Guild(guildID string) GuildSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.guilds[guildID]; ok {
		return g
	}
	return GuildSettings{ID: guildID}
}

// Guilds returns a snapshot of every known guild's settings.
func (s *Storage) Guilds() []GuildSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]GuildSettings, 0, len(s.guilds))
	for _, g := range s.guilds {
		list = append(list, g)
	}
	return list
}
