package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remit/internal/refdata/models"
	"remit/internal/refdata/store/memory"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/requestcontext"
)

func newService() *Service {
	return New(memory.NewInMemory())
}

func TestUpsertInstitution(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	t.Run("creates and reads back", func(t *testing.T) {
		instID := id.InstitutionID(uuid.New())
		inst, err := svc.UpsertInstitution(ctx, instID, InstitutionInput{
			LegalName:   "Acme Bank AG",
			BIC:         "ACMEDEFF",
			CountryCode: "DE",
		})
		require.NoError(t, err)
		assert.Equal(t, instID, inst.ID)

		got, err := svc.GetInstitution(ctx, instID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Bank AG", got.LegalName)
	})

	t.Run("replace keeps created_at", func(t *testing.T) {
		instID := id.InstitutionID(uuid.New())
		created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
		_, err := svc.UpsertInstitution(requestcontext.WithTime(ctx, created), instID, InstitutionInput{
			LegalName:   "Globex Bank",
			CountryCode: "FR",
		})
		require.NoError(t, err)

		updated := created.Add(48 * time.Hour)
		inst, err := svc.UpsertInstitution(requestcontext.WithTime(ctx, updated), instID, InstitutionInput{
			LegalName:   "Globex Bank SA",
			CountryCode: "FR",
		})
		require.NoError(t, err)
		assert.Equal(t, created, inst.CreatedAt)
		assert.Equal(t, updated, inst.UpdatedAt)
	})

	t.Run("bic taken by another institution conflicts", func(t *testing.T) {
		_, err := svc.UpsertInstitution(ctx, id.InstitutionID(uuid.New()), InstitutionInput{
			LegalName:   "First Bank",
			BIC:         "FRSTGB2L",
			CountryCode: "GB",
		})
		require.NoError(t, err)

		_, err = svc.UpsertInstitution(ctx, id.InstitutionID(uuid.New()), InstitutionInput{
			LegalName:   "Second Bank",
			BIC:         "FRSTGB2L",
			CountryCode: "GB",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("invalid bic rejected", func(t *testing.T) {
		_, err := svc.UpsertInstitution(ctx, id.InstitutionID(uuid.New()), InstitutionInput{
			LegalName:   "Bad Bank",
			BIC:         "nope",
			CountryCode: "DE",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("unknown institution yields not found", func(t *testing.T) {
		_, err := svc.GetInstitution(ctx, id.InstitutionID(uuid.New()))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestUpsertParty(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	instID := id.InstitutionID(uuid.New())
	_, err := svc.UpsertInstitution(ctx, instID, InstitutionInput{
		LegalName:   "Acme Bank AG",
		CountryCode: "DE",
	})
	require.NoError(t, err)

	t.Run("creates with institution reference and identifiers", func(t *testing.T) {
		partyID := id.PartyID(uuid.New())
		p, err := svc.UpsertParty(ctx, partyID, PartyInput{
			Type:          "DEBTOR",
			DisplayName:   "Acme GmbH",
			InstitutionID: instID.String(),
			Identifiers: []models.Identifier{
				{Type: "IBAN", Value: "DE89370400440532013000"},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, p.InstitutionID)
		assert.Equal(t, instID, *p.InstitutionID)
		assert.Len(t, p.Identifiers, 1)
	})

	t.Run("unknown institution reference rejected", func(t *testing.T) {
		_, err := svc.UpsertParty(ctx, id.PartyID(uuid.New()), PartyInput{
			Type:          "CREDITOR",
			DisplayName:   "Globex Ltd",
			InstitutionID: uuid.NewString(),
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("duplicate identifier rejected", func(t *testing.T) {
		_, err := svc.UpsertParty(ctx, id.PartyID(uuid.New()), PartyInput{
			Type:        "DEBTOR",
			DisplayName: "Initech BV",
			Identifiers: []models.Identifier{
				{Type: "IBAN", Value: "NL91ABNA0417164300"},
				{Type: "IBAN", Value: "NL91ABNA0417164300"},
			},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestSnapshotParty(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	instID := id.InstitutionID(uuid.New())
	_, err := svc.UpsertInstitution(ctx, instID, InstitutionInput{
		LegalName:   "Acme Bank AG",
		BIC:         "ACMEDEFF",
		CountryCode: "DE",
	})
	require.NoError(t, err)

	partyID := id.PartyID(uuid.New())
	_, err = svc.UpsertParty(ctx, partyID, PartyInput{
		Type:          "DEBTOR",
		DisplayName:   "Acme GmbH",
		InstitutionID: instID.String(),
	})
	require.NoError(t, err)

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap, err := svc.SnapshotParty(requestcontext.WithTime(ctx, at), partyID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", snap.DisplayName)
	assert.Equal(t, at, snap.TakenAt)
	require.NotNil(t, snap.Institution)
	assert.Equal(t, "ACMEDEFF", snap.Institution.BIC)

	// Later edits to the party must not affect the snapshot already taken.
	_, err = svc.UpsertParty(ctx, partyID, PartyInput{
		Type:        "DEBTOR",
		DisplayName: "Acme Holdings GmbH",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", snap.DisplayName)
}
