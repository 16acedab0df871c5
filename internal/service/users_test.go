package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nstepanova/onboard/internal/models"
)

// fakeUserRepo implements UserRepository for testing.
type fakeUserRepo struct {
	findReturn  *models.User
	findErr     error
	created     *models.User
	createErr   error
	createCalls int
	createdHash string

	updateReturn *models.User
	updateErr    error
	updatePatch  models.UserPatch
	updateID     int64

	allReturn []models.UserSummary
	allErr    error
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findReturn, f.findErr
}

func (f *fakeUserRepo) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	f.createCalls++
	f.createdHash = passwordHash
	return f.created, f.createErr
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	f.updateID = id
	f.updatePatch = patch
	return f.updateReturn, f.updateErr
}

func (f *fakeUserRepo) All(ctx context.Context) ([]models.UserSummary, error) {
	return f.allReturn, f.allErr
}

func TestUserService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "Abcdef1!"},
		{"missing password", "a@example.com", ""},
		{"both missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{}
			s := NewUserService(repo)

			_, _, err := s.Create(context.Background(), tt.email, tt.password)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Zero(t, repo.createCalls, "repository must not be touched on validation failure")
		})
	}
}

func TestUserService_Create_New(t *testing.T) {
	repo := &fakeUserRepo{
		created: &models.User{ID: 5, Email: "a@example.com", Step: 1},
	}
	s := NewUserService(repo)

	user, created, err := s.Create(context.Background(), "a@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(5), user.ID)

	// The stored credential must be a bcrypt hash of the input, never the input.
	assert.NotEqual(t, "Abcdef1!", repo.createdHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdHash), []byte("Abcdef1!")))
}

func TestUserService_Create_ExistingIsIdempotent(t *testing.T) {
	existing := &models.User{ID: 9, Email: "a@example.com", Step: 3}
	repo := &fakeUserRepo{findReturn: existing}
	s := NewUserService(repo)

	user, created, err := s.Create(context.Background(), "a@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, existing, user)
	assert.Zero(t, repo.createCalls)
}

func TestUserService_Create_DuplicateRaceFallsBackToFind(t *testing.T) {
	// First find misses, create loses the race, second find hits.
	raced := &models.User{ID: 2, Email: "a@example.com", Step: 1}
	calls := 0
	findRepo := &racingUserRepo{
		fakeUserRepo: &fakeUserRepo{createErr: models.ErrDuplicate},
		onFind: func() *models.User {
			calls++
			if calls == 1 {
				return nil
			}
			return raced
		},
	}
	s := NewUserService(findRepo)

	user, created, err := s.Create(context.Background(), "a@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(2), user.ID)
}

// racingUserRepo lets FindByEmail return different results per call.
type racingUserRepo struct {
	*fakeUserRepo
	onFind func() *models.User
}

func (r *racingUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.onFind(), nil
}

func TestUserService_Update_InvalidID(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)

	for _, id := range []int64{0, -1} {
		_, err := s.Update(context.Background(), id, models.UserPatch{})
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
	}
	assert.Zero(t, repo.updateID, "repository must not be touched on validation failure")
}

func TestUserService_Update_HashesPassword(t *testing.T) {
	repo := &fakeUserRepo{updateReturn: &models.User{ID: 3}}
	s := NewUserService(repo)

	password := "NewPass1!"
	_, err := s.Update(context.Background(), 3, models.UserPatch{Password: &password})
	require.NoError(t, err)

	require.Nil(t, repo.updatePatch.Password, "plaintext must not reach the repository")
	require.NotNil(t, repo.updatePatch.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.updatePatch.PasswordHash), []byte(password)))
}

func TestUserService_Update_PassesPatchThrough(t *testing.T) {
	repo := &fakeUserRepo{updateReturn: &models.User{ID: 3, Step: 3}}
	s := NewUserService(repo)

	about := "hi"
	step := 3
	user, err := s.Update(context.Background(), 3, models.UserPatch{AboutMe: &about, Step: &step})
	require.NoError(t, err)
	assert.Equal(t, int64(3), repo.updateID)
	assert.Equal(t, &about, repo.updatePatch.AboutMe)
	assert.Equal(t, &step, repo.updatePatch.Step)
	assert.Nil(t, repo.updatePatch.Email, "absent fields stay absent")
	assert.Equal(t, 3, user.Step)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := &fakeUserRepo{updateErr: models.ErrNotFound}
	s := NewUserService(repo)

	step := 2
	_, err := s.Update(context.Background(), 999, models.UserPatch{Step: &step})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_List(t *testing.T) {
	repo := &fakeUserRepo{allReturn: []models.UserSummary{{ID: 1, Email: "a@example.com"}}}
	s := NewUserService(repo)

	users, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
}

func TestUserService_List_Error(t *testing.T) {
	repo := &fakeUserRepo{allErr: errors.New("store down")}
	s := NewUserService(repo)

	_, err := s.List(context.Background())
	assert.Error(t, err)
}
