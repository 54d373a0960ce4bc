package completion

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tutela/internal/training/models"
	id "tutela/pkg/domain"
)

// PostgresStore persists completion sets in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE module_completions (
//	    user_id      UUID        NOT NULL,
//	    org_id       UUID        NOT NULL,
//	    module_id    INT         NOT NULL CHECK (module_id > 0),
//	    completed_at TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (user_id, org_id, module_id)
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed completion store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Fetch returns all completion records for the user within the organization.
// A user with no rows gets an empty set, not an error.
func (s *PostgresStore) Fetch(ctx context.Context, userID id.UserID, orgID id.OrgID) (models.CompletionSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module_id, completed_at
		FROM module_completions
		WHERE user_id = $1 AND org_id = $2
		ORDER BY module_id
	`, userID.String(), orgID.String())
	if err != nil {
		return nil, fmt.Errorf("fetch completions: %w", err)
	}
	defer rows.Close()

	set := models.NewCompletionSet()
	for rows.Next() {
		var (
			moduleID    int
			completedAt time.Time
		)
		if err := rows.Scan(&moduleID, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion row: %w", err)
		}
		set.Add(models.CompletionRecord{ModuleID: id.ModuleID(moduleID), CompletedAt: completedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion rows: %w", err)
	}
	return set, nil
}

// SaveAll upserts the full set in one round trip using unnest. ON CONFLICT DO
// NOTHING keeps the first recorded completed_at, which makes the write
// idempotent under retry and gives union semantics across concurrent
// sessions of the same user.
func (s *PostgresStore) SaveAll(ctx context.Context, userID id.UserID, orgID id.OrgID, set models.CompletionSet) error {
	records := set.Records()
	if len(records) == 0 {
		return nil
	}

	moduleIDs := make([]int64, len(records))
	completedAts := make([]time.Time, len(records))
	for i, rec := range records {
		moduleIDs[i] = int64(rec.ModuleID)
		completedAts[i] = rec.CompletedAt
	}

	query := `
		INSERT INTO module_completions (user_id, org_id, module_id, completed_at)
		SELECT $1, $2, unnest($3::int[]), unnest($4::timestamptz[])
		ON CONFLICT (user_id, org_id, module_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query,
		userID.String(), orgID.String(), pq.Array(moduleIDs), pq.Array(completedAts),
	); err != nil {
		return fmt.Errorf("save completions batch: %w", err)
	}
	return nil
}
