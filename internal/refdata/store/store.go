// Package store defines the persistence contract for reference data.
package store

import (
	"context"

	"remit/internal/refdata/models"
	id "remit/pkg/domain"
)

// Store persists institutions and parties. Upserts are keyed by ID;
// uniqueness of BIC and LEI across institutions is enforced by the store and
// reported as sentinel.ErrConflict.
type Store interface {
	UpsertInstitution(ctx context.Context, inst *models.Institution) error
	FindInstitution(ctx context.Context, instID id.InstitutionID) (*models.Institution, error)
	UpsertParty(ctx context.Context, p *models.Party) error
	FindParty(ctx context.Context, partyID id.PartyID) (*models.Party, error)
}
