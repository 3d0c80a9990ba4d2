// Package handler exposes reference data upserts and reads over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"remit/internal/refdata/models"
	"remit/internal/refdata/service"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/httputil"
	"remit/pkg/requestcontext"
)

// Service defines the reference data operations the handler depends on.
type Service interface {
	UpsertInstitution(ctx context.Context, instID id.InstitutionID, in service.InstitutionInput) (*models.Institution, error)
	GetInstitution(ctx context.Context, instID id.InstitutionID) (*models.Institution, error)
	UpsertParty(ctx context.Context, partyID id.PartyID, in service.PartyInput) (*models.Party, error)
	GetParty(ctx context.Context, partyID id.PartyID) (*models.Party, error)
}

// Handler handles reference data endpoints.
type Handler struct {
	refdata Service
	logger  *slog.Logger
}

func New(refdata Service, logger *slog.Logger) *Handler {
	return &Handler{refdata: refdata, logger: logger}
}

// Register mounts the refdata routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/refdata", func(r chi.Router) {
		r.Put("/institutions/{id}", h.handleUpsertInstitution)
		r.Get("/institutions/{id}", h.handleGetInstitution)
		r.Put("/parties/{id}", h.handleUpsertParty)
		r.Get("/parties/{id}", h.handleGetParty)
	})
}

// InstitutionRequest is the wire form of an institution upsert.
type InstitutionRequest struct {
	LegalName   string `json:"legal_name"`
	BIC         string `json:"bic,omitempty"`
	LEI         string `json:"lei,omitempty"`
	CountryCode string `json:"country_code"`
}

func (r *InstitutionRequest) Validate() error {
	if r.LegalName == "" {
		return dErrors.New(dErrors.CodeValidation, "legal_name is required")
	}
	if r.CountryCode == "" {
		return dErrors.New(dErrors.CodeValidation, "country_code is required")
	}
	return nil
}

// PartyRequest is the wire form of a party upsert.
type PartyRequest struct {
	PartyType     string              `json:"party_type"`
	DisplayName   string              `json:"display_name"`
	InstitutionID string              `json:"institution_id,omitempty"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Identifiers   []models.Identifier `json:"identifiers,omitempty"`
}

func (r *PartyRequest) Validate() error {
	if _, ok := models.ParsePartyType(r.PartyType); !ok {
		return dErrors.New(dErrors.CodeValidation, "party_type must be one of DEBTOR, CREDITOR, INTERMEDIARY, BOTH")
	}
	if r.DisplayName == "" {
		return dErrors.New(dErrors.CodeValidation, "display_name is required")
	}
	return nil
}

func (h *Handler) handleUpsertInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	instID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[InstitutionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	inst, err := h.refdata.UpsertInstitution(ctx, instID, service.InstitutionInput{
		LegalName:   req.LegalName,
		BIC:         req.BIC,
		LEI:         req.LEI,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "institution upsert failed", "request_id", requestID, "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) handleGetInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	instID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	inst, err := h.refdata.GetInstitution(ctx, instID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) handleUpsertParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	partyID, err := id.ParsePartyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[PartyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.refdata.UpsertParty(ctx, partyID, service.PartyInput{
		Type:          req.PartyType,
		DisplayName:   req.DisplayName,
		InstitutionID: req.InstitutionID,
		Email:         req.Email,
		Phone:         req.Phone,
		Identifiers:   req.Identifiers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "party upsert failed", "request_id", requestID, "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleGetParty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	partyID, err := id.ParsePartyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.refdata.GetParty(ctx, partyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}
