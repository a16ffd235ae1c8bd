// Package location resolves the human-readable service-delivery address for a
// booking from a two-level source choice.
package location

import (
	"strings"

	"glowbook/models"
)

// Level1 selects whether the service happens at the customer's or the staff
// member's address.
type Level1 string

const (
	AtCustomer Level1 = "customer_location"
	AtProvider Level1 = "provider_location"
)

// Level2 narrows the customer-side source. Only meaningful when Level1 is
// AtCustomer.
type Level2 string

const (
	CurrentLocation    Level2 = "current_location"
	ProfileAddress     Level2 = "profile_address"
	AlternativeAddress Level2 = "alternative_address"
)

// Placeholders surfaced when the chosen source has nothing usable; resolution
// never fails hard.
const (
	PlaceholderNoProfileAddress = "No address in profile"
	PlaceholderFetchingLocation = "Fetching location..."
)

// Choice carries every input the resolution depends on.
type Choice struct {
	Level1 Level1
	Level2 Level2
	// CachedDeviceLocation is the previously reverse-geocoded device position.
	CachedDeviceLocation string
	Profile              *models.User
	Staff                *models.Staff
}

// Resolve returns the delivery address string for the choice. It is a pure
// function of its inputs.
func Resolve(c Choice) string {
	if c.Level1 == AtProvider {
		return providerAddress(c.Staff)
	}

	switch c.Level2 {
	case CurrentLocation:
		if c.CachedDeviceLocation == "" {
			return PlaceholderFetchingLocation
		}
		return c.CachedDeviceLocation
	case AlternativeAddress:
		if c.Profile == nil || c.Profile.AlternativeAddress == "" {
			return PlaceholderNoProfileAddress
		}
		return c.Profile.AlternativeAddress
	default:
		if c.Profile == nil || c.Profile.ProfileAddress == "" {
			return PlaceholderNoProfileAddress
		}
		return c.Profile.ProfileAddress
	}
}

// providerAddress appends the staff member's city to the raw address unless
// the city is already part of it, case-insensitively. Display parity rule.
func providerAddress(staff *models.Staff) string {
	if staff == nil {
		return ""
	}
	addr := staff.Address
	if staff.City == "" {
		return addr
	}
	if strings.Contains(strings.ToLower(addr), strings.ToLower(staff.City)) {
		return addr
	}
	if addr == "" {
		return staff.City
	}
	return addr + ", " + staff.City
}
