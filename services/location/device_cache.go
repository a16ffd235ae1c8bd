package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/services/kvstore"
)

const deviceLocationPrefix = "device_location:"

// DeviceLocationTTL bounds how long a reverse-geocoded position is trusted.
const DeviceLocationTTL = 24 * time.Hour

// DeviceLocationCache persists the last reverse-geocoded device position per
// user, the source behind the CurrentLocation choice.
type DeviceLocationCache struct {
	Store kvstore.Store
}

// NewDeviceLocationCache constructs the cache over the given store.
func NewDeviceLocationCache(store kvstore.Store) *DeviceLocationCache {
	return &DeviceLocationCache{Store: store}
}

// Save records the latest resolved address for the user.
func (c *DeviceLocationCache) Save(ctx context.Context, userID, address string) error {
	if err := c.Store.Set(ctx, deviceLocationPrefix+userID, address, DeviceLocationTTL); err != nil {
		return fmt.Errorf("failed to cache device location for user %s: %w", userID, err)
	}
	return nil
}

// Get returns the cached address, or "" when none is known.
func (c *DeviceLocationCache) Get(ctx context.Context, userID string) (string, error) {
	val, err := c.Store.Get(ctx, deviceLocationPrefix+userID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read device location for user %s: %w", userID, err)
	}
	return val, nil
}
