// Package postgres implements the reference data store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"remit/internal/refdata/models"
	id "remit/pkg/domain"
	"remit/pkg/platform/sentinel"
	txcontext "remit/pkg/platform/tx"
)

// Store implements store.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) querier(ctx context.Context) queryer {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) UpsertInstitution(ctx context.Context, inst *models.Institution) error {
	const query = `
		INSERT INTO institutions (id, legal_name, bic, lei, country_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			legal_name = EXCLUDED.legal_name,
			bic = EXCLUDED.bic,
			lei = EXCLUDED.lei,
			country_code = EXCLUDED.country_code,
			updated_at = EXCLUDED.updated_at`

	_, err := s.querier(ctx).ExecContext(ctx, query,
		uuid.UUID(inst.ID), inst.LegalName, nullable(inst.BIC), nullable(inst.LEI),
		inst.CountryCode, inst.CreatedAt, inst.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("upsert institution: %w", err)
	}
	return nil
}

func (s *Store) FindInstitution(ctx context.Context, instID id.InstitutionID) (*models.Institution, error) {
	const query = `
		SELECT id, legal_name, COALESCE(bic, ''), COALESCE(lei, ''), country_code, created_at, updated_at
		FROM institutions WHERE id = $1`

	var inst models.Institution
	var instUUID uuid.UUID
	err := s.querier(ctx).QueryRowContext(ctx, query, uuid.UUID(instID)).Scan(
		&instUUID, &inst.LegalName, &inst.BIC, &inst.LEI,
		&inst.CountryCode, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find institution: %w", err)
	}
	inst.ID = id.InstitutionID(instUUID)
	return &inst, nil
}

func (s *Store) UpsertParty(ctx context.Context, p *models.Party) error {
	identifiers, err := json.Marshal(p.Identifiers)
	if err != nil {
		return fmt.Errorf("marshal identifiers: %w", err)
	}

	const query = `
		INSERT INTO parties (id, party_type, display_name, institution_id, email, phone, identifiers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			party_type = EXCLUDED.party_type,
			display_name = EXCLUDED.display_name,
			institution_id = EXCLUDED.institution_id,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			identifiers = EXCLUDED.identifiers,
			updated_at = EXCLUDED.updated_at`

	var institutionID uuid.NullUUID
	if p.InstitutionID != nil {
		institutionID = uuid.NullUUID{UUID: uuid.UUID(*p.InstitutionID), Valid: true}
	}

	_, err = s.querier(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID), string(p.Type), p.DisplayName, institutionID,
		nullable(p.Email), nullable(p.Phone), identifiers, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("upsert party: %w", err)
	}
	return nil
}

func (s *Store) FindParty(ctx context.Context, partyID id.PartyID) (*models.Party, error) {
	const query = `
		SELECT id, party_type, display_name, institution_id, COALESCE(email, ''), COALESCE(phone, ''), identifiers, created_at, updated_at
		FROM parties WHERE id = $1`

	var p models.Party
	var partyUUID uuid.UUID
	var institutionID uuid.NullUUID
	var identifiers []byte
	err := s.querier(ctx).QueryRowContext(ctx, query, uuid.UUID(partyID)).Scan(
		&partyUUID, &p.Type, &p.DisplayName, &institutionID,
		&p.Email, &p.Phone, &identifiers, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find party: %w", err)
	}
	p.ID = id.PartyID(partyUUID)
	if institutionID.Valid {
		instID := id.InstitutionID(institutionID.UUID)
		p.InstitutionID = &instID
	}
	if len(identifiers) > 0 {
		if err := json.Unmarshal(identifiers, &p.Identifiers); err != nil {
			return nil, fmt.Errorf("unmarshal identifiers: %w", err)
		}
	}
	return &p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}
