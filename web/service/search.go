package service

import (
	"context"
	"strings"

	"github.com/dukcapil-minsel/suket/model"
)

// SearchResult holds the rows shaped for the caller's role. Exactly one of
// Admin or Guest is set.
type SearchResult struct {
	Role  model.Role
	Admin []model.AdminRecord
	Guest []model.GuestRecord
}

func (r *SearchResult) Len() int {
	return len(r.Admin) + len(r.Guest)
}

type SearchService struct {
	provider RecordProvider
}

func NewSearchService(provider RecordProvider) *SearchService {
	return &SearchService{provider: provider}
}

// Search looks up the trimmed query and projects the matches for role.
// A blank query matches nothing.
func (s *SearchService) Search(ctx context.Context, query string, role model.Role) (*SearchResult, error) {
	key := strings.TrimSpace(query)
	if key == "" {
		return nil, ErrNotFound
	}
	records, err := s.provider.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	result := &SearchResult{Role: role}
	if role.IsAdmin() {
		result.Admin = make([]model.AdminRecord, 0, len(records))
		for _, r := range records {
			result.Admin = append(result.Admin, r.Admin())
		}
		return result, nil
	}
	result.Guest = make([]model.GuestRecord, 0, len(records))
	for _, r := range records {
		result.Guest = append(result.Guest, r.Guest())
	}
	return result, nil
}
