// Package memory is the in-memory reference data store for tests and local
// development.
package memory

import (
	"context"
	"sync"

	"remit/internal/refdata/models"
	id "remit/pkg/domain"
	"remit/pkg/platform/sentinel"
)

// InMemory keeps institutions and parties in maps guarded by one mutex.
type InMemory struct {
	mu           sync.RWMutex
	institutions map[id.InstitutionID]*models.Institution
	byBIC        map[string]id.InstitutionID
	byLEI        map[string]id.InstitutionID
	parties      map[id.PartyID]*models.Party
}

func NewInMemory() *InMemory {
	return &InMemory{
		institutions: make(map[id.InstitutionID]*models.Institution),
		byBIC:        make(map[string]id.InstitutionID),
		byLEI:        make(map[string]id.InstitutionID),
		parties:      make(map[id.PartyID]*models.Party),
	}
}

func (s *InMemory) UpsertInstitution(_ context.Context, inst *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inst.BIC != "" {
		if owner, ok := s.byBIC[inst.BIC]; ok && owner != inst.ID {
			return sentinel.ErrConflict
		}
	}
	if inst.LEI != "" {
		if owner, ok := s.byLEI[inst.LEI]; ok && owner != inst.ID {
			return sentinel.ErrConflict
		}
	}

	if prev, ok := s.institutions[inst.ID]; ok {
		if prev.BIC != "" {
			delete(s.byBIC, prev.BIC)
		}
		if prev.LEI != "" {
			delete(s.byLEI, prev.LEI)
		}
	}

	cp := *inst
	s.institutions[inst.ID] = &cp
	if inst.BIC != "" {
		s.byBIC[inst.BIC] = inst.ID
	}
	if inst.LEI != "" {
		s.byLEI[inst.LEI] = inst.ID
	}
	return nil
}

func (s *InMemory) FindInstitution(_ context.Context, instID id.InstitutionID) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.institutions[instID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (s *InMemory) UpsertParty(_ context.Context, p *models.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	if len(p.Identifiers) > 0 {
		cp.Identifiers = make([]models.Identifier, len(p.Identifiers))
		copy(cp.Identifiers, p.Identifiers)
	}
	s.parties[p.ID] = &cp
	return nil
}

func (s *InMemory) FindParty(_ context.Context, partyID id.PartyID) (*models.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parties[partyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	if len(p.Identifiers) > 0 {
		cp.Identifiers = make([]models.Identifier, len(p.Identifiers))
		copy(cp.Identifiers, p.Identifiers)
	}
	return &cp, nil
}
