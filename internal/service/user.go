package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (s *UserService) ByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepository.ByID(ctx, id)
}

// UpdateProfile applies form to user. The password hash only changes when a new
// password was submitted. On validation failure user is left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, form *validation.ProfileForm) error {
	errs := form.Validate()

	if !errs.Has("email") && !strings.EqualFold(form.Email, user.Email) {
		taken, err := s.userRepository.EmailTaken(ctx, form.Email, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			errs.Add("email", "this email is already in use")
		}
	}

	if !errs.Has("username") && form.Username != user.Username {
		taken, err := s.userRepository.UsernameTaken(ctx, form.Username, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			errs.Add("username", "a user with that username already exists")
		}
	}

	if errs.Any() {
		return errs
	}

	updated := *user
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName
	updated.Email = form.Email
	updated.Username = form.Username

	if form.ChangesPassword() {
		hash, err := HashPassword(form.Password1)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = hash
	}

	err := s.userRepository.Update(ctx, &updated)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		errs.Add("username", "a user with that username already exists")
		return errs
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	*user = updated
	return nil
}

// DeleteByUsername removes an account. Contacts it owned stay, without an owner.
func (s *UserService) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.userRepository.ByUsername(ctx, username)
	if err != nil {
		return err
	}

	err = s.userRepository.Delete(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted", "user_id", user.ID, "username", username)
	return nil
}
