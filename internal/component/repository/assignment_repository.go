package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/mysql"
)

type MySQLAssignmentRepository struct {
	db *sql.DB
}

func NewMySQLAssignmentRepository(db *sql.DB) *MySQLAssignmentRepository {
	return &MySQLAssignmentRepository{db: db}
}

func (r *MySQLAssignmentRepository) Insert(ctx context.Context, tx mysql.Querier, a *domain.CheckoutAssignment) (int64, error) {
	query := `
		INSERT INTO components_assets (component_id, asset_id, user_id, assigned_qty, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query, a.ComponentID, a.AssetID, a.UserID, a.AssignedQty, a.CreatedAt)
	if err != nil {
		return 0, mapWriteError(err, "inserting component assignment")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

func (r *MySQLAssignmentRepository) SumAssignedQty(ctx context.Context, componentID int64) (int, error) {
	query := `SELECT COALESCE(SUM(assigned_qty), 0) FROM components_assets WHERE component_id = ?`

	var sum int
	if err := r.db.QueryRowContext(ctx, query, componentID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("summing assigned quantity: %w", err)
	}
	return sum, nil
}

// SumAssignedQtyForUpdate reads the latest committed assignments with a shared lock, so the
// total cannot be served from an older REPEATABLE READ snapshot.
func (r *MySQLAssignmentRepository) SumAssignedQtyForUpdate(ctx context.Context, tx mysql.Querier, componentID int64) (int, error) {
	query := `SELECT COALESCE(SUM(assigned_qty), 0) FROM components_assets WHERE component_id = ? LOCK IN SHARE MODE`

	var sum int
	if err := tx.QueryRowContext(ctx, query, componentID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("summing assigned quantity: %w", err)
	}
	return sum, nil
}

func (r *MySQLAssignmentRepository) CountByComponent(ctx context.Context, tx mysql.Querier, componentID int64) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM components_assets WHERE component_id = ?`, componentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting component assignments: %w", err)
	}
	return count, nil
}

// ListWithAssets returns every assignment of the component joined with its asset, oldest first.
func (r *MySQLAssignmentRepository) ListWithAssets(ctx context.Context, componentID int64) ([]domain.CheckoutRow, error) {
	query := `
		SELECT ca.id, ca.component_id, ca.asset_id, ca.user_id, ca.assigned_qty, ca.created_at,
		       a.id, a.name, a.asset_tag, a.company_id
		FROM components_assets ca
		JOIN assets a ON a.id = ca.asset_id
		WHERE ca.component_id = ?
		ORDER BY ca.created_at, ca.id
	`

	rows, err := r.db.QueryContext(ctx, query, componentID)
	if err != nil {
		return nil, fmt.Errorf("querying component assignments: %w", err)
	}
	defer rows.Close()

	result := []domain.CheckoutRow{}
	for rows.Next() {
		var row domain.CheckoutRow
		a := &row.Assignment
		err := rows.Scan(
			&a.ID, &a.ComponentID, &a.AssetID, &a.UserID, &a.AssignedQty, &a.CreatedAt,
			&row.Asset.ID, &row.Asset.Name, &row.Asset.AssetTag, &row.Asset.CompanyID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignment rows: %w", err)
	}
	return result, nil
}
