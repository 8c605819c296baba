package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

type MySQLAssetRepository struct {
	db *sql.DB
}

func NewMySQLAssetRepository(db *sql.DB) *MySQLAssetRepository {
	return &MySQLAssetRepository{db: db}
}

func (r *MySQLAssetRepository) FindByID(ctx context.Context, id int64) (*domain.Asset, error) {
	query := `SELECT id, name, asset_tag, company_id FROM assets WHERE id = ?`

	var a domain.Asset
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.AssetTag, &a.CompanyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("asset", fmt.Sprintf("asset with id %d does not exist", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying asset by id: %w", err)
	}
	return &a, nil
}
