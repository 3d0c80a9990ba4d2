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

// AppendRouteStep assigns step_no under the payment's row lock so concurrent
// appenders produce a contiguous 1..N chain.
func (s *Store) AppendRouteStep(ctx context.Context, step models.RouteStep) (models.RouteStep, error) {
	var stamped models.RouteStep
	err := s.withTx(ctx, func(q queryer) error {
		var locked uuid.UUID
		err := q.QueryRowContext(ctx,
			`SELECT id FROM payments WHERE id = $1 FOR UPDATE`, uuid.UUID(step.PaymentID),
		).Scan(&locked)
		if err == sql.ErrNoRows {
			return sentinel.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock payment: %w", err)
		}

		inst, err := marshalJSON(step.Institution)
		if err != nil {
			return err
		}
		meta, err := marshalJSON(step.Metadata)
		if err != nil {
			return err
		}

		stamped = step
		err = q.QueryRowContext(ctx, `
			INSERT INTO route_steps (payment_id, step_no, role, institution, metadata, recorded_at)
			SELECT $1, COALESCE(MAX(step_no), 0) + 1, $2, $3, $4, $5
			FROM route_steps WHERE payment_id = $1
			RETURNING step_no
		`, uuid.UUID(step.PaymentID), step.Role, inst, meta, step.RecordedAt).Scan(&stamped.StepNo)
		if err != nil {
			return fmt.Errorf("insert route step: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.RouteStep{}, err
	}
	return stamped, nil
}

func (s *Store) ListRouteSteps(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error) {
	if _, err := s.FindPayment(ctx, paymentID); err != nil {
		return nil, err
	}

	rows, err := s.querier(ctx).QueryContext(ctx, `
		SELECT payment_id, step_no, role, institution, metadata, recorded_at
		FROM route_steps
		WHERE payment_id = $1
		ORDER BY step_no
	`, uuid.UUID(paymentID))
	if err != nil {
		return nil, fmt.Errorf("list route steps: %w", err)
	}
	defer rows.Close()

	var out []models.RouteStep
	for rows.Next() {
		var (
			step    models.RouteStep
			pid     uuid.UUID
			instRaw []byte
			metaRaw []byte
		)
		if err := rows.Scan(&pid, &step.StepNo, &step.Role, &instRaw, &metaRaw, &step.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan route step: %w", err)
		}
		step.PaymentID = id.PaymentID(pid)
		if err := unmarshalJSON(instRaw, &step.Institution); err != nil {
			return nil, fmt.Errorf("scan route step institution: %w", err)
		}
		if err := unmarshalJSON(metaRaw, &step.Metadata); err != nil {
			return nil, fmt.Errorf("scan route step metadata: %w", err)
		}
		out = append(out, step)
	}
	return out, rows.Err()
}
