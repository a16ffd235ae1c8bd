package location

import (
	"testing"

	"glowbook/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveCustomerSources(t *testing.T) {
	profile := &models.User{
		ProfileAddress:     "12 Rose St",
		AlternativeAddress: "44 Lake View",
	}

	cases := []struct {
		name   string
		choice Choice
		want   string
	}{
		{
			name:   "profile address",
			choice: Choice{Level1: AtCustomer, Level2: ProfileAddress, Profile: profile},
			want:   "12 Rose St",
		},
		{
			name:   "alternative address",
			choice: Choice{Level1: AtCustomer, Level2: AlternativeAddress, Profile: profile},
			want:   "44 Lake View",
		},
		{
			name:   "cached device location",
			choice: Choice{Level1: AtCustomer, Level2: CurrentLocation, CachedDeviceLocation: "MG Road, Bengaluru"},
			want:   "MG Road, Bengaluru",
		},
		{
			name:   "current location not cached yet",
			choice: Choice{Level1: AtCustomer, Level2: CurrentLocation, Profile: profile},
			want:   PlaceholderFetchingLocation,
		},
		{
			name:   "empty profile address",
			choice: Choice{Level1: AtCustomer, Level2: ProfileAddress, Profile: &models.User{}},
			want:   PlaceholderNoProfileAddress,
		},
		{
			name:   "empty alternative address",
			choice: Choice{Level1: AtCustomer, Level2: AlternativeAddress, Profile: &models.User{}},
			want:   PlaceholderNoProfileAddress,
		},
		{
			name:   "no profile loaded",
			choice: Choice{Level1: AtCustomer, Level2: ProfileAddress},
			want:   PlaceholderNoProfileAddress,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.choice))
		})
	}
}

func TestResolveProviderAppendsCity(t *testing.T) {
	staff := &models.Staff{Address: "5 Salon Lane", City: "Mysuru"}
	got := Resolve(Choice{Level1: AtProvider, Staff: staff})
	assert.Equal(t, "5 Salon Lane, Mysuru", got)
}

func TestResolveProviderCityAlreadyPresent(t *testing.T) {
	staff := &models.Staff{Address: "5 Salon Lane, mysuru", City: "Mysuru"}
	got := Resolve(Choice{Level1: AtProvider, Staff: staff})
	assert.Equal(t, "5 Salon Lane, mysuru", got)
}

func TestResolveProviderEdgeCases(t *testing.T) {
	assert.Equal(t, "Mysuru", Resolve(Choice{Level1: AtProvider, Staff: &models.Staff{City: "Mysuru"}}))
	assert.Equal(t, "5 Salon Lane", Resolve(Choice{Level1: AtProvider, Staff: &models.Staff{Address: "5 Salon Lane"}}))
	assert.Equal(t, "", Resolve(Choice{Level1: AtProvider}))
}
