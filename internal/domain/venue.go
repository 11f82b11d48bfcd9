package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VenueStatus represents the status of a venue
type VenueStatus string

const (
	VenueStatusPending   VenueStatus = "pending"
	VenueStatusActive    VenueStatus = "active"
	VenueStatusSuspended VenueStatus = "suspended"
	VenueStatusInactive  VenueStatus = "inactive"
)

// IsValid checks if the status is a valid VenueStatus
func (s VenueStatus) IsValid() bool {
	switch s {
	case VenueStatusPending, VenueStatusActive, VenueStatusSuspended, VenueStatusInactive:
		return true
	}
	return false
}

func (s VenueStatus) String() string {
	return string(s)
}

// LicenseType is the venue's liquor/operating license class
type LicenseType string

const (
	LicenseRestaurant LicenseType = "restaurant"
	LicenseBar        LicenseType = "bar"
	LicensePub        LicenseType = "pub"
	LicenseBrewery    LicenseType = "brewery"
	LicenseWinery     LicenseType = "winery"
	LicenseDistillery LicenseType = "distillery"
	LicenseNightclub  LicenseType = "nightclub"
	LicenseLounge     LicenseType = "lounge"
)

// IsValid checks if the license type is known
func (l LicenseType) IsValid() bool {
	switch l {
	case LicenseRestaurant, LicenseBar, LicensePub, LicenseBrewery,
		LicenseWinery, LicenseDistillery, LicenseNightclub, LicenseLounge:
		return true
	}
	return false
}

// Venue represents a venue entity
type Venue struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`

	Address    string   `json:"address"`
	City       string   `json:"city"`
	Province   Province `json:"province"`
	PostalCode string   `json:"postal_code,omitempty"`

	// Latitude and Longitude are either both present or both absent; a
	// venue with no coordinates is excluded from radius queries.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`

	LicenseType LicenseType `json:"license_type"`
	VendorID    uuid.UUID   `json:"vendor_id"`
	Status      VenueStatus `json:"status"`

	HasPatio     bool `json:"has_patio"`
	HasParking   bool `json:"has_parking"`
	HasWifi      bool `json:"has_wifi"`
	IsAccessible bool `json:"is_accessible"`

	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Validate validates all venue fields
func (v Venue) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return NewValidationError("INVALID_NAME", "venue name is required")
	}
	if strings.TrimSpace(v.Address) == "" {
		return NewValidationError("INVALID_ADDRESS", "venue address is required")
	}
	if strings.TrimSpace(v.City) == "" {
		return NewValidationError("INVALID_CITY", "venue city is required")
	}
	if !v.Province.IsValid() {
		return NewValidationError("INVALID_PROVINCE", "unknown province code")
	}
	if !v.LicenseType.IsValid() {
		return NewValidationError("INVALID_LICENSE_TYPE", "unknown license type")
	}
	if (v.Latitude == nil) != (v.Longitude == nil) {
		return NewValidationError(CodeInvalidCoordinates, "latitude and longitude must both be set or both be unset")
	}
	if v.Latitude != nil {
		if *v.Latitude < -90 || *v.Latitude > 90 {
			return NewValidationError(CodeInvalidCoordinates, "latitude out of range [-90, 90]")
		}
		if *v.Longitude < -180 || *v.Longitude > 180 {
			return NewValidationError(CodeInvalidCoordinates, "longitude out of range [-180, 180]")
		}
	}
	if v.Status != "" && !v.Status.IsValid() {
		return NewValidationError("INVALID_STATUS", "unknown venue status")
	}
	return nil
}

// Coordinates returns the venue point, reporting false when the venue
// has no geography.
func (v Venue) Coordinates() (lat, lng float64, ok bool) {
	if v.Latitude == nil || v.Longitude == nil {
		return 0, 0, false
	}
	return *v.Latitude, *v.Longitude, true
}

// IsActive reports whether the venue participates in discovery
func (v Venue) IsActive() bool {
	return v.Status == VenueStatusActive
}

// Activate returns a copy with status set to active
func (v Venue) Activate(now time.Time) Venue {
	v.Status = VenueStatusActive
	v.UpdatedAt = now
	return v
}

// Suspend returns a copy with status set to suspended
func (v Venue) Suspend(now time.Time) Venue {
	v.Status = VenueStatusSuspended
	v.UpdatedAt = now
	return v
}

// MarkVerified returns a copy with the verification timestamp set
func (v Venue) MarkVerified(now time.Time) Venue {
	v.LastVerifiedAt = &now
	v.UpdatedAt = now
	return v
}
