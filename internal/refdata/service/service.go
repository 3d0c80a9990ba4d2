// Package service manages reference data: institutions and parties mutated
// out-of-band from the payment lifecycle.
package service

import (
	"context"
	"errors"
	"log/slog"

	"remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/sentinel"
	"remit/pkg/requestcontext"
)

// Store is the persistence surface for reference data.
type Store interface {
	UpsertInstitution(ctx context.Context, inst *models.Institution) error
	FindInstitution(ctx context.Context, instID id.InstitutionID) (*models.Institution, error)
	UpsertParty(ctx context.Context, p *models.Party) error
	FindParty(ctx context.Context, partyID id.PartyID) (*models.Party, error)
}

// Service validates and persists reference data changes.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InstitutionInput is the caller-supplied institution state for an upsert.
type InstitutionInput struct {
	LegalName   string
	BIC         string
	LEI         string
	CountryCode string
}

// UpsertInstitution creates or replaces an institution record. BIC and LEI
// stay unique across institutions.
func (s *Service) UpsertInstitution(ctx context.Context, instID id.InstitutionID, in InstitutionInput) (*models.Institution, error) {
	if instID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "institution id is required")
	}

	now := requestcontext.Now(ctx).UTC()
	inst, err := models.NewInstitution(instID, in.LegalName, in.BIC, in.LEI, in.CountryCode, now)
	if err != nil {
		return nil, asValidation(err)
	}

	if existing, ferr := s.store.FindInstitution(ctx, instID); ferr == nil {
		inst.CreatedAt = existing.CreatedAt
	}

	if err := s.store.UpsertInstitution(ctx, inst); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "bic or lei already belongs to another institution")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert institution")
	}

	s.logger.InfoContext(ctx, "institution upserted", "institution_id", instID)
	return inst, nil
}

// GetInstitution returns one institution.
func (s *Service) GetInstitution(ctx context.Context, instID id.InstitutionID) (*models.Institution, error) {
	if instID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "institution id is required")
	}
	inst, err := s.store.FindInstitution(ctx, instID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "institution %s not found", instID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	return inst, nil
}

// PartyInput is the caller-supplied party state for an upsert.
type PartyInput struct {
	Type          string
	DisplayName   string
	InstitutionID string
	Email         string
	Phone         string
	Identifiers   []models.Identifier
}

// UpsertParty creates or replaces a party record.
func (s *Service) UpsertParty(ctx context.Context, partyID id.PartyID, in PartyInput) (*models.Party, error) {
	if partyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "party id is required")
	}

	now := requestcontext.Now(ctx).UTC()
	p, err := models.NewParty(partyID, models.PartyType(in.Type), in.DisplayName, now)
	if err != nil {
		return nil, asValidation(err)
	}
	p.Email = in.Email
	p.Phone = in.Phone

	if in.InstitutionID != "" {
		instID, err := id.ParseInstitutionID(in.InstitutionID)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "institution_id is not a valid id")
		}
		if _, err := s.store.FindInstitution(ctx, instID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.Newf(dErrors.CodeValidation, "institution %s does not exist", instID)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve institution")
		}
		p.InstitutionID = &instID
	}

	for _, ident := range in.Identifiers {
		if err := p.AddIdentifier(ident, now); err != nil {
			return nil, asValidation(err)
		}
	}

	if existing, ferr := s.store.FindParty(ctx, partyID); ferr == nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.store.UpsertParty(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "institution reference does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert party")
	}

	s.logger.InfoContext(ctx, "party upserted", "party_id", partyID)
	return p, nil
}

// GetParty returns one party.
func (s *Service) GetParty(ctx context.Context, partyID id.PartyID) (*models.Party, error) {
	if partyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "party id is required")
	}
	p, err := s.store.FindParty(ctx, partyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "party %s not found", partyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load party")
	}
	return p, nil
}

// SnapshotParty resolves a party reference into its immutable snapshot for
// embedding into a payment.
func (s *Service) SnapshotParty(ctx context.Context, partyID id.PartyID) (models.PartySnapshot, error) {
	p, err := s.GetParty(ctx, partyID)
	if err != nil {
		return models.PartySnapshot{}, err
	}
	var inst *models.Institution
	if p.InstitutionID != nil {
		inst, err = s.store.FindInstitution(ctx, *p.InstitutionID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return models.PartySnapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
		}
	}
	return models.SnapshotParty(p, inst, requestcontext.Now(ctx).UTC()), nil
}

func asValidation(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code == dErrors.CodeInvariantViolation {
		return dErrors.New(dErrors.CodeValidation, de.Message)
	}
	return err
}
