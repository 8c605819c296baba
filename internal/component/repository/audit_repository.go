package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/mysql"
)

type MySQLAuditLogRepository struct {
	db *sql.DB
}

func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}

func (r *MySQLAuditLogRepository) Insert(ctx context.Context, tx mysql.Querier, e *domain.AuditEntry) (int64, error) {
	query := `
		INSERT INTO audit_logs (actor_id, action, item_type, item_id, target_type, target_id, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		e.ActorID, e.Action, e.ItemType, e.ItemID, e.TargetType, e.TargetID, e.Note, e.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting audit log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// ListForItem returns audit entries about one item, newest first.
func (r *MySQLAuditLogRepository) ListForItem(ctx context.Context, itemType string, itemID int64) ([]domain.AuditEntry, error) {
	query := `
		SELECT id, actor_id, action, item_type, item_id, target_type, target_id, note, created_at
		FROM audit_logs
		WHERE item_type = ? AND item_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, itemType, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying audit logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var targetType sql.NullString
		var targetID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.ItemType, &e.ItemID, &targetType, &targetID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit log row: %w", err)
		}
		e.TargetType = targetType.String
		e.TargetID = targetID.Int64
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit log rows: %w", err)
	}
	return entries, nil
}
