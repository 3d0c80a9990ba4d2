//go:build integration

package containers

// schema mirrors migrations/0001_init.sql. Keep the two in sync when the
// stores change their column sets.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
    id                    UUID PRIMARY KEY,
    external_ref          VARCHAR(128) NOT NULL UNIQUE,
    source_system         TEXT NOT NULL,
    current_state         TEXT NOT NULL,
    last_state_changed_at TIMESTAMPTZ NOT NULL,
    total_payments        INTEGER NOT NULL DEFAULT 0,
    attributes            JSONB NOT NULL DEFAULT '{}',
    created_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id                    UUID PRIMARY KEY,
    message_id            UUID NOT NULL REFERENCES messages (id),
    payment_ref           VARCHAR(128) NOT NULL UNIQUE,
    scheme                TEXT NOT NULL,
    amount_minor          BIGINT NOT NULL CHECK (amount_minor > 0),
    currency              CHAR(3) NOT NULL,
    current_state         TEXT NOT NULL,
    last_state_changed_at TIMESTAMPTZ NOT NULL,
    debtor_snapshot       JSONB NOT NULL,
    creditor_snapshot     JSONB NOT NULL,
    debtor_id             UUID,
    creditor_id           UUID,
    route_summary         JSONB NOT NULL DEFAULT '{}',
    created_at            TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_message_id ON payments (message_id);

CREATE TABLE IF NOT EXISTS transition_events (
    id             UUID PRIMARY KEY,
    aggregate_kind TEXT NOT NULL,
    aggregate_id   UUID NOT NULL,
    seq_no         BIGINT NOT NULL CHECK (seq_no >= 1),
    from_state     TEXT,
    to_state       TEXT NOT NULL,
    occurred_at    TIMESTAMPTZ NOT NULL,
    actor_type     TEXT NOT NULL,
    actor_id       TEXT NOT NULL,
    metadata       JSONB NOT NULL DEFAULT '{}',
    UNIQUE (aggregate_kind, aggregate_id, seq_no)
);

CREATE TABLE IF NOT EXISTS route_steps (
    payment_id  UUID NOT NULL REFERENCES payments (id),
    step_no     INTEGER NOT NULL CHECK (step_no >= 1),
    role        TEXT NOT NULL,
    institution JSONB NOT NULL,
    metadata    JSONB NOT NULL DEFAULT '{}',
    recorded_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (payment_id, step_no)
);

CREATE TABLE IF NOT EXISTS outbox (
    id             UUID PRIMARY KEY,
    aggregate_kind TEXT NOT NULL,
    aggregate_id   UUID NOT NULL,
    payload        JSONB NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL,
    published_at   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_outbox_unpublished ON outbox (created_at) WHERE published_at IS NULL;

CREATE TABLE IF NOT EXISTS institutions (
    id           UUID PRIMARY KEY,
    legal_name   VARCHAR(256) NOT NULL,
    bic          VARCHAR(11) UNIQUE,
    lei          CHAR(20) UNIQUE,
    country_code CHAR(2) NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS parties (
    id             UUID PRIMARY KEY,
    party_type     TEXT NOT NULL,
    display_name   VARCHAR(256) NOT NULL,
    institution_id UUID REFERENCES institutions (id),
    email          TEXT,
    phone          TEXT,
    identifiers    JSONB NOT NULL DEFAULT '[]',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);
`
