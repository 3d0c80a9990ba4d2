package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
	id "remit/pkg/domain"
	"remit/pkg/platform/sentinel"
)

const messageColumns = `id, external_ref, source_system, current_state, last_state_changed_at, total_payments, attributes, created_at`

const paymentColumns = `id, message_id, payment_ref, scheme, amount_minor, currency, current_state, last_state_changed_at,
	debtor_snapshot, creditor_snapshot, debtor_id, creditor_id, route_summary, created_at`

func (s *Store) CreateBatch(ctx context.Context, msg *models.Message, payments []*models.Payment, initial []models.TransitionEvent) error {
	return s.withTx(ctx, func(q queryer) error {
		attrs, err := marshalJSON(msg.Attributes)
		if err != nil {
			return err
		}

		res, err := q.ExecContext(ctx, `
			INSERT INTO messages (`+messageColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (external_ref) DO NOTHING
		`, uuid.UUID(msg.ID), msg.ExternalRef, msg.SourceSystem, msg.CurrentState,
			msg.LastStateChangedAt, msg.TotalPayments, attrs, msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("insert message: %w", err)
		} else if n == 0 {
			return fmt.Errorf("external_ref %q: %w", msg.ExternalRef, sentinel.ErrAlreadyUsed)
		}

		for _, p := range payments {
			if err := insertPayment(ctx, q, p); err != nil {
				return err
			}
		}

		for _, ev := range initial {
			ev.SeqNo = 1
			if err := insertEvent(ctx, q, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertPayment(ctx context.Context, q queryer, p *models.Payment) error {
	debtor, err := marshalJSON(p.DebtorSnapshot)
	if err != nil {
		return err
	}
	creditor, err := marshalJSON(p.CreditorSnapshot)
	if err != nil {
		return err
	}
	summary, err := marshalJSON(p.RouteSummary)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, uuid.UUID(p.ID), uuid.UUID(p.MessageID), p.PaymentRef, p.Scheme, p.AmountMinor,
		p.Currency, p.CurrentState, p.LastStateChangedAt, debtor, creditor,
		nullableID(p.DebtorID), nullableID(p.CreditorID), summary, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("payment_ref %q: %w", p.PaymentRef, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func nullableID(partyID *id.PartyID) any {
	if partyID == nil {
		return nil
	}
	return uuid.UUID(*partyID)
}

func (s *Store) FindMessage(ctx context.Context, messageID id.MessageID) (*models.Message, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT `+messageColumns+` FROM messages WHERE id = $1
	`, uuid.UUID(messageID))
	return scanMessage(row)
}

func (s *Store) FindMessageByExternalRef(ctx context.Context, externalRef string) (*models.Message, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT `+messageColumns+` FROM messages WHERE external_ref = $1
	`, externalRef)
	return scanMessage(row)
}

func (s *Store) FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = $1
	`, uuid.UUID(paymentID))
	return scanPayment(row)
}

func (s *Store) FindPaymentByRef(ctx context.Context, paymentRef string) (*models.Payment, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE payment_ref = $1
	`, paymentRef)
	return scanPayment(row)
}

func (s *Store) ListPayments(ctx context.Context, messageID id.MessageID) ([]*models.Payment, error) {
	if _, err := s.FindMessage(ctx, messageID); err != nil {
		return nil, err
	}

	rows, err := s.querier(ctx).QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE message_id = $1 ORDER BY created_at, payment_ref
	`, uuid.UUID(messageID))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var (
		msg     models.Message
		msgID   uuid.UUID
		attrRaw []byte
	)
	err := row.Scan(&msgID, &msg.ExternalRef, &msg.SourceSystem, &msg.CurrentState,
		&msg.LastStateChangedAt, &msg.TotalPayments, &attrRaw, &msg.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	msg.ID = id.MessageID(msgID)
	if err := unmarshalJSON(attrRaw, &msg.Attributes); err != nil {
		return nil, fmt.Errorf("scan message attributes: %w", err)
	}
	return &msg, nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		p           models.Payment
		paymentID   uuid.UUID
		messageID   uuid.UUID
		debtorRaw   []byte
		creditorRaw []byte
		summaryRaw  []byte
		debtorID    uuid.NullUUID
		creditorID  uuid.NullUUID
	)
	err := row.Scan(&paymentID, &messageID, &p.PaymentRef, &p.Scheme, &p.AmountMinor,
		&p.Currency, &p.CurrentState, &p.LastStateChangedAt, &debtorRaw, &creditorRaw,
		&debtorID, &creditorID, &summaryRaw, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	p.ID = id.PaymentID(paymentID)
	p.MessageID = id.MessageID(messageID)
	if err := unmarshalJSON(debtorRaw, &p.DebtorSnapshot); err != nil {
		return nil, fmt.Errorf("scan debtor snapshot: %w", err)
	}
	if err := unmarshalJSON(creditorRaw, &p.CreditorSnapshot); err != nil {
		return nil, fmt.Errorf("scan creditor snapshot: %w", err)
	}
	if err := unmarshalJSON(summaryRaw, &p.RouteSummary); err != nil {
		return nil, fmt.Errorf("scan route summary: %w", err)
	}
	if debtorID.Valid {
		d := id.PartyID(debtorID.UUID)
		p.DebtorID = &d
	}
	if creditorID.Valid {
		c := id.PartyID(creditorID.UUID)
		p.CreditorID = &c
	}
	return &p, nil
}
