package postgres

import (
	"context"
	"database/sql"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, full_name, email, role, phone, COALESCE(farm_name, ''), farm_size_acres, COALESCE(farm_location, ''),
	COALESCE(crop_types, ''), COALESCE(business_name, ''), COALESCE(property_address, ''), equipment_count,
	COALESCE(service_area, ''), created_at, updated_at`

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.Phone, &p.FarmName, &p.FarmSizeAcres, &p.FarmLocation,
		&p.CropTypes, &p.BusinessName, &p.PropertyAddress, &p.EquipmentCount, &p.ServiceArea, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM profiles`)
}

func (r *profileRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM profiles WHERE role = $1`, role)
}

func (r *profileRepository) ListRecent(ctx context.Context, limit int) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
