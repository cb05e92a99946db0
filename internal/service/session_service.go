package service

import (
	"github.com/sparklabs-au/ignite-api/internal/models"
	appErrors "github.com/sparklabs-au/ignite-api/pkg/errors"
)

// SessionService exposes the configured session definitions.
type SessionService struct {
	sessions sessionSource
}

// NewSessionService constructs a session service.
func NewSessionService(sessions sessionSource) *SessionService {
	return &SessionService{sessions: sessions}
}

// List returns all definitions in declaration order.
func (s *SessionService) List() []models.SessionDefinition {
	return s.sessions.List()
}

// Get returns one definition by id.
func (s *SessionService) Get(id string) (models.SessionDefinition, error) {
	def, ok := s.sessions.Get(id)
	if !ok {
		return models.SessionDefinition{}, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return def, nil
}
