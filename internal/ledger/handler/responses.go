package handler

import (
	"remit/internal/ledger/service"
	id "remit/pkg/domain"
)

// IngestResponse reports the identifiers of an ingested batch.
type IngestResponse struct {
	MessageID  id.MessageID   `json:"message_id"`
	PaymentIDs []id.PaymentID `json:"payment_ids"`
	Duplicate  bool           `json:"duplicate"`
}

func ingestResponse(result *service.IngestResult) IngestResponse {
	return IngestResponse{
		MessageID:  result.MessageID,
		PaymentIDs: result.PaymentIDs,
		Duplicate:  result.Duplicate,
	}
}
