package postgres

import (
	"context"
	"database/sql"
	"fmt"

	id "tutela/pkg/domain"
	audit "tutela/pkg/platform/audit"

	"github.com/google/uuid"
)

// Store persists audit events in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE audit_events (
//	    id         UUID PRIMARY KEY,
//	    timestamp  TIMESTAMPTZ NOT NULL,
//	    user_id    UUID NOT NULL,
//	    org_id     UUID NOT NULL,
//	    action     TEXT NOT NULL,
//	    module_id  INT NOT NULL DEFAULT 0,
//	    detail     TEXT NOT NULL DEFAULT '',
//	    request_id TEXT NOT NULL DEFAULT ''
//	);
//	CREATE INDEX audit_events_user_idx ON audit_events (user_id, timestamp DESC);
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes one event. Idempotent on the generated event ID.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (id, timestamp, user_id, org_id, action, module_id, detail, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		uuid.UUID(event.UserID),
		uuid.UUID(event.OrgID),
		string(event.Action),
		int(event.ModuleID),
		event.Detail,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUser returns events for one user, newest first.
func (s *Store) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	query := `
		SELECT timestamp, user_id, org_id, action, module_id, detail, request_id
		FROM audit_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			userUUID uuid.UUID
			orgUUID  uuid.UUID
			action   string
			moduleID int
		)
		err := rows.Scan(
			&event.Timestamp,
			&userUUID,
			&orgUUID,
			&action,
			&moduleID,
			&event.Detail,
			&event.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.UserID = id.UserID(userUUID)
		event.OrgID = id.OrgID(orgUUID)
		event.Action = audit.Action(action)
		event.ModuleID = id.ModuleID(moduleID)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
