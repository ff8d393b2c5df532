package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const upsertProfileQuery = `INSERT INTO profiles (id, full_name, email, role, phone, farm_name, farm_size_acres, farm_location, crop_types,
	business_name, property_address, equipment_count, service_area, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		full_name = EXCLUDED.full_name,
		email = EXCLUDED.email,
		role = EXCLUDED.role,
		phone = EXCLUDED.phone,
		farm_name = EXCLUDED.farm_name,
		farm_size_acres = EXCLUDED.farm_size_acres,
		farm_location = EXCLUDED.farm_location,
		crop_types = EXCLUDED.crop_types,
		business_name = EXCLUDED.business_name,
		property_address = EXCLUDED.property_address,
		equipment_count = EXCLUDED.equipment_count,
		service_area = EXCLUDED.service_area,
		updated_at = EXCLUDED.updated_at`

func (r *accountRepository) CreateWithProfile(ctx context.Context, a *domain.Account, p *domain.Profile) (err error) {
	logger.StoreCall("accounts", "CreateWithProfile", "email", a.Email, "role", p.Role)
	defer func() { logger.StoreResult("accounts", "CreateWithProfile", err, "id", a.ID) }()

	now := time.Now().UTC()
	a.CreatedAt = now
	p.ID = a.ID
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertProfileQuery,
		p.ID, p.FullName, p.Email, p.Role, p.Phone,
		nullString(p.FarmName), p.FarmSizeAcres, nullString(p.FarmLocation), nullString(p.CropTypes),
		nullString(p.BusinessName), nullString(p.PropertyAddress), p.EquipmentCount, nullString(p.ServiceArea),
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit signup: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}
