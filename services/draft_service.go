// services/draft_service.go
package services

import (
	"sync"

	"github.com/google/uuid"

	"curtainpro-backend/draft"
)

// DraftService hands each clerk their one in-progress order draft. Gin
// serves handlers concurrently, so the registry is guarded here and the
// Draft values it hands out carry their own locks.
type DraftService struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*draft.Draft
}

func NewDraftService() *DraftService {
	return &DraftService{drafts: make(map[uuid.UUID]*draft.Draft)}
}

// ForUser returns the user's draft, creating an empty one on first use.
func (s *DraftService) ForUser(userID uuid.UUID) *draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[userID]
	if !ok {
		d = draft.New()
		s.drafts[userID] = d
	}
	return d
}
