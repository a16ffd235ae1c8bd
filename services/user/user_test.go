package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"glowbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUserRepo struct {
	byID map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]models.User)}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	out := u
	return &out, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.byID[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return errors.New("user not found")
	}
	r.byID[user.ID] = *user
	return nil
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemUserRepo()
	repo.byID["u1"] = models.User{
		ID:           "u1",
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "hashed",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := &DefaultUserService{Repo: repo, Logger: zap.NewNop()}

	got, err := svc.UpdateProfile(context.Background(), models.User{
		ID:             "u1",
		Name:           "Asha K",
		PhoneNumber:    "9900112233",
		ProfileAddress: "12 Rose St",
		DarkMode:       true,
		// A forged email or hash in the payload must not stick.
		Email:        "evil@example.com",
		PasswordHash: "forged",
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha K", got.Name)
	assert.Equal(t, "9900112233", got.PhoneNumber)
	assert.Equal(t, "12 Rose St", got.ProfileAddress)
	assert.True(t, got.DarkMode)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "hashed", got.PasswordHash)

	// The preference persists and can be flipped back off.
	stored, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, stored.DarkMode)

	got, err = svc.UpdateProfile(context.Background(), models.User{ID: "u1", Name: "Asha K"})
	require.NoError(t, err)
	assert.False(t, got.DarkMode)
}
