package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

const componentColumns = `c.id, c.name, c.category_id, c.location_id, c.company_id, c.order_number,
	c.min_amt, c.serial, c.purchase_date, c.purchase_cost, c.qty, c.user_id,
	c.created_at, c.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type MySQLComponentRepository struct {
	db *sql.DB
}

func NewMySQLComponentRepository(db *sql.DB) *MySQLComponentRepository {
	return &MySQLComponentRepository{db: db}
}

func (r *MySQLComponentRepository) Create(ctx context.Context, c *domain.Component) (int64, error) {
	query := `
		INSERT INTO components (name, category_id, location_id, company_id, order_number,
		                        min_amt, serial, purchase_date, purchase_cost, qty, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.CategoryID, c.LocationID, c.CompanyID, c.OrderNumber,
		c.MinAmt, c.Serial, c.PurchaseDate, c.PurchaseCost, c.Qty, c.UserID,
	)
	if err != nil {
		return 0, mapWriteError(err, "inserting component")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

func (r *MySQLComponentRepository) FindByID(ctx context.Context, id int64) (*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components c WHERE c.id = ?`
	return r.findOne(ctx, r.db, query, id)
}

// FindByIDForUpdate locks the component row until tx ends.
func (r *MySQLComponentRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Querier, id int64) (*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components c WHERE c.id = ? FOR UPDATE`
	return r.findOne(ctx, tx, query, id)
}

func (r *MySQLComponentRepository) findOne(ctx context.Context, q mysql.Querier, query string, id int64) (*domain.Component, error) {
	c, err := scanComponent(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("component", fmt.Sprintf("component with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying component by id: %w", err)
	}
	return c, nil
}

// Update replaces every mutable column. user_id is never written.
func (r *MySQLComponentRepository) Update(ctx context.Context, tx mysql.Querier, c *domain.Component) error {
	query := `
		UPDATE components
		SET name = ?, category_id = ?, location_id = ?, company_id = ?, order_number = ?,
		    min_amt = ?, serial = ?, purchase_date = ?, purchase_cost = ?, qty = ?
		WHERE id = ?
	`

	// Callers hold the row lock, and MySQL reports 0 affected rows for an unchanged row,
	// so RowsAffected is not a reliable existence check here.
	_, err := tx.ExecContext(ctx, query,
		c.Name, c.CategoryID, c.LocationID, c.CompanyID, c.OrderNumber,
		c.MinAmt, c.Serial, c.PurchaseDate, c.PurchaseCost, c.Qty,
		c.ID,
	)
	if err != nil {
		return mapWriteError(err, "updating component")
	}
	return nil
}

func (r *MySQLComponentRepository) Delete(ctx context.Context, tx mysql.Querier, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id)
	if err != nil {
		if mysql.IsRowReferenced(err) {
			return apperrors.NewConflictError(fmt.Sprintf("component with id %d still has checkouts", id))
		}
		return fmt.Errorf("deleting component: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewResourceNotFoundError("component", fmt.Sprintf("component with id %d not found", id))
	}
	return nil
}

// List returns a page of components with their checked-out totals and the total row count.
func (r *MySQLComponentRepository) List(ctx context.Context, filter domain.ComponentFilter) ([]domain.ComponentSummary, int, error) {
	var where []string
	var args []any

	if filter.CompanyID != nil {
		where = append(where, "c.company_id = ?")
		args = append(args, *filter.CompanyID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "(c.name LIKE ? OR c.serial LIKE ? OR c.order_number LIKE ?)")
		like := "%" + escapeLike(s) + "%"
		args = append(args, like, like, like)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM components c ` + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting components: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(SUM(ca.assigned_qty), 0)
		FROM components c
		LEFT JOIN components_assets ca ON ca.component_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.id
		LIMIT ? OFFSET ?`,
		componentColumns, whereSQL,
	)

	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying components: %w", err)
	}
	defer rows.Close()

	summaries := []domain.ComponentSummary{}
	for rows.Next() {
		var s domain.ComponentSummary
		c := &s.Component
		err := rows.Scan(
			&c.ID, &c.Name, &c.CategoryID, &c.LocationID, &c.CompanyID, &c.OrderNumber,
			&c.MinAmt, &c.Serial, &c.PurchaseDate, &c.PurchaseCost, &c.Qty, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt, &s.CheckedOut,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning component row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating component rows: %w", err)
	}

	return summaries, total, nil
}

func scanComponent(row rowScanner) (*domain.Component, error) {
	var c domain.Component
	err := row.Scan(
		&c.ID, &c.Name, &c.CategoryID, &c.LocationID, &c.CompanyID, &c.OrderNumber,
		&c.MinAmt, &c.Serial, &c.PurchaseDate, &c.PurchaseCost, &c.Qty, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// mapWriteError turns constraint failures into validation errors keyed by the offending column.
func mapWriteError(err error, op string) error {
	if column, ok := mysql.MissingReference(err); ok {
		if column == "" {
			column = "reference"
		}
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   column,
			Message: column + " does not reference an existing record",
		})
	}
	if column, ok := mysql.OutOfRange(err); ok {
		if column == "" {
			column = "body"
		}
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   column,
			Message: column + " is out of range",
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
