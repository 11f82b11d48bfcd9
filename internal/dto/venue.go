package dto

import (
	"time"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// CreateVenueRequest carries the payload for venue creation
type CreateVenueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postal_code"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`

	LicenseType string `json:"license_type" binding:"required"`

	HasPatio     bool `json:"has_patio"`
	HasParking   bool `json:"has_parking"`
	HasWifi      bool `json:"has_wifi"`
	IsAccessible bool `json:"is_accessible"`
}

// VenueResponse is the outward-facing venue projection
type VenueResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`

	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`

	LicenseType string `json:"license_type"`
	Status      string `json:"status"`

	HasPatio     bool `json:"has_patio"`
	HasParking   bool `json:"has_parking"`
	HasWifi      bool `json:"has_wifi"`
	IsAccessible bool `json:"is_accessible"`

	DistanceKm *float64 `json:"distance_km,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVenueResponse projects a venue for the API
func NewVenueResponse(v domain.Venue) *VenueResponse {
	return &VenueResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		Slug:         v.Slug,
		Description:  v.Description,
		Address:      v.Address,
		City:         v.City,
		Province:     v.Province.String(),
		PostalCode:   v.PostalCode,
		Latitude:     v.Latitude,
		Longitude:    v.Longitude,
		Phone:        v.Phone,
		Email:        v.Email,
		Website:      v.Website,
		LicenseType:  string(v.LicenseType),
		Status:       v.Status.String(),
		HasPatio:     v.HasPatio,
		HasParking:   v.HasParking,
		HasWifi:      v.HasWifi,
		IsAccessible: v.IsAccessible,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
