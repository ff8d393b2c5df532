package domain

import "time"

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a public signup may request this role.
func (r Role) SelfAssignable() bool {
	return r == RoleFarmer || r == RoleOwner
}

// LandingPath is where a signed-in user of this role is sent by default.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleOwner:
		return "/owner/dashboard"
	default:
		return "/bookings"
	}
}

// Account is the credential row owned by the auth subsystem.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`

	// Farmer fields
	FarmName      string   `json:"farm_name,omitempty"`
	FarmSizeAcres *float64 `json:"farm_size_acres,omitempty"`
	FarmLocation  string   `json:"farm_location,omitempty"`
	CropTypes     string   `json:"crop_types,omitempty"`

	// Owner fields
	BusinessName    string `json:"business_name,omitempty"`
	PropertyAddress string `json:"property_address,omitempty"`
	EquipmentCount  *int32 `json:"equipment_count,omitempty"`
	ServiceArea     string `json:"service_area,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location returns the best address available for delivery snapshots.
func (p *Profile) Location() string {
	switch {
	case p.FarmLocation != "":
		return p.FarmLocation
	case p.PropertyAddress != "":
		return p.PropertyAddress
	default:
		return p.ServiceArea
	}
}
