package storage

import "fmt"

// Report is one moderation complaint. Immutable once submitted.
type Report struct {
	ID       string // opaque fixed-length alphanumeric id
	Reporter string
	Guild    string // origin guild
	Reported string
	Reason   string // stored untruncated
}

// Instance is one guild-local broadcast copy of a report, individually
// resolvable by reviewers in that guild.
type Instance struct {
	Guild   string
	Message string
	Report  string
}

// SubmitReport persists a new report row.
func (s *Storage) SubmitReport(r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO reports (id, reporter, guild, reported, reason) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Reporter, r.Guild, r.Reported, r.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert report %s: %w", r.ID, err)
	}
	s.reports[r.ID] = r
	return nil
}

// RecordInstance persists the (guild, message) pair carrying a report copy.
func (s *Storage) RecordInstance(guildID, messageID, reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO messages (guild, message, report) VALUES (?, ?, ?)`,
		guildID, messageID, reportID)
	if err != nil {
		return fmt.Errorf("failed to insert message instance %s: %w", messageID, err)
	}
	s.instances[messageID] = Instance{Guild: guildID, Message: messageID, Report: reportID}
	return nil
}

// ReportsFor returns every report filed against a user, in no particular order.
func (s *Storage) ReportsFor(userID string) []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []Report
	for _, r := range s.reports {
		if r.Reported == userID {
			list = append(list, r)
		}
	}
	return list
}

// ReportByID looks up a report by its id.
func (s *Storage) ReportByID(id string) (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	return r, ok
}

// InstanceFor finds the broadcast instance tied to a message, if any.
func (s *Storage) InstanceFor(messageID string) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.instances[messageID]
	return in, ok
}
