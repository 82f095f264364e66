package user

import (
	"context"
	"errors"
	"fmt"
	"plantnet/domain"
	"plantnet/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateStatus(ctx context.Context, email, status string) error
	UpdateRole(ctx context.Context, email, role, status string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// AccessPolicy contract interface
type AccessPolicy interface {
	Require(ctx context.Context, email string, roles ...string) error
}

const (
	SubjectWelcome   = "Welcome to plantNet!"
	EmailBodyWelcome = `Hi %v, your plantNet account is ready. Happy planting!`
)

type userService struct {
	userRepo  UserRepository
	validate  *validator.Validate
	notifRepo NotificationRepository
	policy    AccessPolicy
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	policy AccessPolicy,
) *userService {
	return &userService{
		userRepo:  userRepo,
		validate:  validate,
		notifRepo: notifRepo,
		policy:    policy,
	}
}

// UpsertUser records a user on first login. Idempotent: a repeated call for
// the same email returns the stored record untouched. The welcome mail is
// fire and forget; a dispatch failure never rolls back the registration.
func (s *userService) UpsertUser(ctx context.Context, email string, profile domain.User) (domain.User, bool, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, false, errors.New("invalid email format")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up user", err)
		return domain.User{}, false, err
	}

	newUser := domain.User{
		FullName: profile.FullName,
		Email:    email,
		Image:    profile.Image,
		Role:     domain.RoleCustomer,
		Status:   domain.StatusNone,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, false, err
	}

	if err := s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectWelcome, fmt.Sprintf(EmailBodyWelcome, newUser.FullName)); err != nil {
		logger.Warn("Failed to send welcome email", err)
	}

	return newUser, true, nil
}

// GetUserRole returns the stored role, or the empty string when no record
// exists. Absence is not an error here; the frontend probes this freely.
func (s *userService) GetUserRole(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		logger.Error("Failed to get user role", err)
		return "", err
	}

	return user.Role, nil
}

// GetAllUsers lists every account for the admin dashboard.
func (s *userService) GetAllUsers(ctx context.Context, actorEmail string) ([]domain.User, error) {
	if err := s.policy.Require(ctx, actorEmail, domain.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	return users, nil
}

// RequestSellerStatus files a seller application for the calling account.
// A pending application cannot be filed twice.
func (s *userService) RequestSellerStatus(ctx context.Context, email string) (domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("User not found for seller request", err)
		return domain.User{}, err
	}

	if user.Status == domain.StatusRequested {
		return domain.User{}, fmt.Errorf("seller status already requested: %w", domain.ErrConflict)
	}

	if err := s.userRepo.UpdateStatus(ctx, email, domain.StatusRequested); err != nil {
		logger.Error("Failed to update user status", err)
		return domain.User{}, err
	}

	user.Status = domain.StatusRequested
	return user, nil
}

// SetUserRole is the admin approval path. Promoting to Seller marks the
// application Verified in the same write.
func (s *userService) SetUserRole(ctx context.Context, actorEmail, targetEmail, role string) (domain.User, error) {
	if err := s.policy.Require(ctx, actorEmail, domain.RoleAdmin); err != nil {
		return domain.User{}, err
	}

	if !domain.ValidRole(role) {
		return domain.User{}, errors.New("invalid role")
	}

	target, err := s.userRepo.FindByEmail(ctx, targetEmail)
	if err != nil {
		logger.Error("Target user not found for role change", err)
		return domain.User{}, err
	}

	status := target.Status
	if role == domain.RoleSeller {
		status = domain.StatusVerified
	}

	if err := s.userRepo.UpdateRole(ctx, targetEmail, role, status); err != nil {
		logger.Error("Failed to update user role", err)
		return domain.User{}, err
	}

	target.Role = role
	target.Status = status
	return target, nil
}
