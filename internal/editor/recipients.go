package editor

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoadRecipients reads the global alert-email list.
func (s *Submitter) LoadRecipients(ctx context.Context) ([]string, error) {
	emails, err := s.client.FetchRecipients(ctx)
	if err != nil {
		s.logger.Warn("recipients load failed", "err", err)
		return nil, err
	}
	return emails, nil
}

// SaveRecipients validates and replaces the global alert-email list.
// Addresses are trimmed but not deduplicated; the list is a plain set of
// strings with no per-item identity.
func (s *Submitter) SaveRecipients(ctx context.Context, emails []string) error {
	trimmed := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		if !emailPattern.MatchString(email) {
			return &ValidationError{Field: "email", Reason: "address " + strconv.Quote(email) + " is malformed"}
		}
		trimmed = append(trimmed, email)
	}
	if len(trimmed) == 0 {
		return &ValidationError{Field: "emails", Reason: "at least one address is required"}
	}

	if err := s.client.SaveRecipients(ctx, trimmed); err != nil {
		s.logger.Warn("recipients save failed", "err", err)
		return err
	}
	s.logger.Info("recipients saved", "count", len(trimmed))
	return nil
}
