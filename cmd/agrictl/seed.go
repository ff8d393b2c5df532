package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type testUser struct {
	Role            string   `json:"role"`
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Phone           string   `json:"phone"`
	FarmName        string   `json:"farm_name,omitempty"`
	FarmSizeAcres   *float64 `json:"farm_size_acres,omitempty"`
	FarmLocation    string   `json:"farm_location,omitempty"`
	CropTypes       string   `json:"crop_types,omitempty"`
	BusinessName    string   `json:"business_name,omitempty"`
	PropertyAddress string   `json:"property_address,omitempty"`
	EquipmentCount  *int32   `json:"equipment_count,omitempty"`
	ServiceArea     string   `json:"service_area,omitempty"`
}

func ptr[T any](v T) *T { return &v }

var testUsers = []testUser{
	{
		Role:          "farmer",
		FullName:      "Test Farmer",
		Email:         "farmer@test.com",
		Password:      "farmer123",
		Phone:         "+1234567890",
		FarmName:      "Green Valley Farm",
		FarmSizeAcres: ptr(250.0),
		FarmLocation:  "Iowa, USA",
		CropTypes:     "Corn, Soybeans, Wheat",
	},
	{
		Role:            "owner",
		FullName:        "Test Equipment Owner",
		Email:           "owner@test.com",
		Password:        "owner123",
		Phone:           "+1234567891",
		BusinessName:    "AgriEquip Rentals",
		PropertyAddress: "123 Farm Road, Nebraska, USA",
		EquipmentCount:  ptr(int32(15)),
		ServiceArea:     "Nebraska, Iowa, Kansas",
	},
	{
		Role:     "admin",
		FullName: "System Administrator",
		Email:    "admin@test.com",
		Password: "admin123",
		Phone:    "+1234567892",
	},
}

func newSeedUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-users",
		Short: "Create the farmer, owner and admin test accounts",
		Long:  "Provisions one account per role through POST /service/users. Existing accounts are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			if s.ServiceKey == "" {
				return errors.New("AGRI_SERVICE_KEY is required")
			}
			return seedUsers(cmd, newAPIClient(s))
		},
	}
}

func seedUsers(cmd *cobra.Command, c *apiClient) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, u := range testUsers {
		u.ConfirmPassword = u.Password
		err := c.do(cmd.Context(), http.MethodPost, "/service/users", u, nil)
		var apiErr *apiError
		switch {
		case err == nil:
			fmt.Fprintf(out, "created %s: %s\n", u.Role, u.Email)
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict:
			fmt.Fprintf(out, "exists  %s: %s\n", u.Role, u.Email)
		default:
			fmt.Fprintf(out, "failed  %s: %s: %v\n", u.Role, u.Email, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d accounts failed", failed, len(testUsers))
	}
	return nil
}
