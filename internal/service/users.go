package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/nstepanova/onboard/internal/models"
)

// UserRepository defines the persistence operations required by the user
// service.
type UserRepository interface {
	// FindByEmail returns the user with the given email, or nil when none exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user at step 1 with the given password hash.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	// Update applies the non-nil patch fields to the user with the given id.
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	// All returns the id/email projection of every user.
	All(ctx context.Context) ([]models.UserSummary, error)
}

// UserService implements user onboarding operations by delegating to a
// UserRepository.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a new UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create finds or creates the user with the given email. The returned
// bool is true when a new record was created. An existing user is
// returned unchanged; whether that counts as a conflict is decided by the
// caller. Passwords are stored as bcrypt hashes, never as given.
func (s *UserService) Create(ctx context.Context, email, password string) (*models.User, bool, error) {
	if email == "" || password == "" {
		return nil, false, ValidationError("email and password are required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user, err := s.repo.Create(ctx, email, string(hash))
	if err != nil {
		// Lost a create race: the row exists now, so fall back to the find.
		if errors.Is(err, models.ErrDuplicate) {
			existing, ferr := s.repo.FindByEmail(ctx, email)
			if ferr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}

// Update applies a merge-patch to the user with the given id: fields
// absent from the patch are left untouched. A plaintext password in the
// patch is replaced by its bcrypt hash before it reaches the repository.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if id <= 0 {
		return nil, ValidationError("invalid user id")
	}

	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		patch.PasswordHash = &h
		patch.Password = nil
	}

	return s.repo.Update(ctx, id, patch)
}

// List returns the id/email projection of every user.
func (s *UserService) List(ctx context.Context) ([]models.UserSummary, error) {
	return s.repo.All(ctx)
}
