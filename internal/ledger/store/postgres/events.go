package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
	id "remit/pkg/domain"
	"remit/pkg/platform/sentinel"
)

func projectionTable(kind models.AggregateKind) (string, error) {
	switch kind {
	case models.KindMessage:
		return "messages", nil
	case models.KindPayment:
		return "payments", nil
	default:
		return "", fmt.Errorf("unknown aggregate kind %q", kind)
	}
}

func (s *Store) CurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, error) {
	table, err := projectionTable(kind)
	if err != nil {
		return "", time.Time{}, err
	}

	var (
		state     models.State
		changedAt time.Time
	)
	err = s.querier(ctx).QueryRowContext(ctx,
		`SELECT current_state, last_state_changed_at FROM `+table+` WHERE id = $1`,
		aggregateID,
	).Scan(&state, &changedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", time.Time{}, sentinel.ErrNotFound
		}
		return "", time.Time{}, fmt.Errorf("current state: %w", err)
	}
	return state, changedAt, nil
}

// AppendTransition performs the conditional projection update and the event
// insert as one atomic unit. The UPDATE takes the aggregate's row lock, so a
// concurrent appender on the same aggregate blocks until commit and then
// observes the new state, failing its own from-state guard.
func (s *Store) AppendTransition(ctx context.Context, ev models.TransitionEvent) (models.TransitionEvent, error) {
	table, err := projectionTable(ev.AggregateKind)
	if err != nil {
		return models.TransitionEvent{}, err
	}

	var stamped models.TransitionEvent
	err = s.withTx(ctx, func(q queryer) error {
		res, err := q.ExecContext(ctx,
			`UPDATE `+table+` SET current_state = $1, last_state_changed_at = $2
			 WHERE id = $3 AND current_state = $4`,
			ev.ToState, ev.OccurredAt, ev.AggregateID, ev.FromState,
		)
		if err != nil {
			return fmt.Errorf("update projection: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update projection: %w", err)
		}
		if n == 0 {
			var current models.State
			err := q.QueryRowContext(ctx,
				`SELECT current_state FROM `+table+` WHERE id = $1`, ev.AggregateID,
			).Scan(&current)
			if err == sql.ErrNoRows {
				return sentinel.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("read current state: %w", err)
			}
			return fmt.Errorf("expected %s, aggregate is %s: %w", ev.FromState, current, sentinel.ErrStateChanged)
		}

		stamped = ev
		return insertEventReturningSeq(ctx, q, &stamped)
	})
	if err != nil {
		return models.TransitionEvent{}, err
	}
	return stamped, nil
}

func insertEvent(ctx context.Context, q queryer, ev models.TransitionEvent) error {
	meta, err := marshalJSON(ev.Metadata)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO transition_events
			(id, aggregate_kind, aggregate_id, seq_no, from_state, to_state, occurred_at, actor_type, actor_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.UUID(ev.ID), ev.AggregateKind, ev.AggregateID, ev.SeqNo,
		nullableState(ev.FromState), ev.ToState, ev.OccurredAt,
		ev.Actor.Type, ev.Actor.ID, meta)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// insertEventReturningSeq assigns the next seq_no inside the insert. The
// caller holds the aggregate row lock, so the MAX subquery cannot race with
// another appender on the same aggregate.
func insertEventReturningSeq(ctx context.Context, q queryer, ev *models.TransitionEvent) error {
	meta, err := marshalJSON(ev.Metadata)
	if err != nil {
		return err
	}
	err = q.QueryRowContext(ctx, `
		INSERT INTO transition_events
			(id, aggregate_kind, aggregate_id, seq_no, from_state, to_state, occurred_at, actor_type, actor_id, metadata)
		SELECT $1, $2, $3, COALESCE(MAX(seq_no), 0) + 1, $4, $5, $6, $7, $8, $9
		FROM transition_events WHERE aggregate_kind = $2 AND aggregate_id = $3
		RETURNING seq_no
	`, uuid.UUID(ev.ID), ev.AggregateKind, ev.AggregateID,
		nullableState(ev.FromState), ev.ToState, ev.OccurredAt,
		ev.Actor.Type, ev.Actor.ID, meta).Scan(&ev.SeqNo)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func nullableState(s models.State) any {
	if s == models.StateNone {
		return nil
	}
	return string(s)
}

func (s *Store) History(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error) {
	if _, _, err := s.CurrentState(ctx, kind, aggregateID); err != nil {
		return nil, err
	}

	rows, err := s.querier(ctx).QueryContext(ctx, `
		SELECT id, aggregate_kind, aggregate_id, seq_no, from_state, to_state, occurred_at, actor_type, actor_id, metadata
		FROM transition_events
		WHERE aggregate_kind = $1 AND aggregate_id = $2
		ORDER BY seq_no
	`, kind, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []models.TransitionEvent
	for rows.Next() {
		var (
			ev      models.TransitionEvent
			eventID uuid.UUID
			from    sql.NullString
			metaRaw []byte
		)
		err := rows.Scan(&eventID, &ev.AggregateKind, &ev.AggregateID, &ev.SeqNo,
			&from, &ev.ToState, &ev.OccurredAt, &ev.Actor.Type, &ev.Actor.ID, &metaRaw)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.ID = id.EventID(eventID)
		if from.Valid {
			ev.FromState = models.State(from.String)
		}
		if err := unmarshalJSON(metaRaw, &ev.Metadata); err != nil {
			return nil, fmt.Errorf("scan event metadata: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
