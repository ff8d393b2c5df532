package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, owner_id, name, description, category, price_per_day_cents, location, image_url, is_available, created_at, updated_at`

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Description, &e.Category, &e.PricePerDayCents, &e.Location,
		&e.ImageURL, &e.IsAvailable, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	logger.StoreCall("equipment", "Create", "owner_id", e.OwnerID, "name", e.Name)
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	query := `INSERT INTO equipment (id, owner_id, name, description, category, price_per_day_cents, location, image_url, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.OwnerID, e.Name, e.Description, e.Category, e.PricePerDayCents,
		e.Location, e.ImageURL, e.IsAvailable, e.CreatedAt, e.UpdatedAt)
	logger.StoreResult("equipment", "Create", err, "id", e.ID)
	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	e, err := scanEquipment(r.db.QueryRowContext(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *equipmentRepository) ListAvailable(ctx context.Context) ([]domain.Equipment, error) {
	return r.list(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE is_available = TRUE ORDER BY created_at DESC`)
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return r.list(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *equipmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	logger.StoreCall("equipment", "SetAvailability", "id", id, "available", available)
	res, err := r.db.ExecContext(ctx, `UPDATE equipment SET is_available = $1, updated_at = $2 WHERE id = $3`,
		available, time.Now().UTC(), id)
	if err != nil {
		logger.StoreResult("equipment", "SetAvailability", err, "id", id)
		return notFound(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT image_url FROM equipment WHERE image_url IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
