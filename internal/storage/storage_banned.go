package storage

import "fmt"

// AddBanned appends a user or guild to the local blacklist. There is no
// removal path at runtime.
func (s *Storage) AddBanned(id string, isUser bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag := 0
	if isUser {
		flag = 1
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO banned (id, is_user) VALUES (?, ?)`, id, flag); err != nil {
		return fmt.Errorf("failed to insert banned entity %s: %w", id, err)
	}
	if isUser {
		s.bannedUsers[id] = struct{}{}
	} else {
		s.bannedGuilds[id] = struct{}{}
	}
	return nil
}

// IsBannedUser reports whether a user is locally blacklisted from reporting.
func (s *Storage) IsBannedUser(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bannedUsers[id]
	return ok
}

// IsBannedGuild reports whether a guild is locally blacklisted from reporting.
func (s *Storage) IsBannedGuild(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bannedGuilds[id]
	return ok
}
