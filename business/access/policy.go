package access

import (
	"context"
	"errors"
	"fmt"
	"plantnet/domain"
)

// UserRepository contract interface
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Policy derives permissions from a verified identity. Every check re-reads
// the stored role: an admin promotion must take effect mid-session, so
// nothing here is cached.
type Policy struct {
	userRepo UserRepository
}

func NewPolicy(userRepo UserRepository) *Policy {
	return &Policy{
		userRepo: userRepo,
	}
}

// ResolveRole returns the stored role for an email, or the empty string when
// no user record exists.
func (p *Policy) ResolveRole(ctx context.Context, email string) (string, error) {
	user, err := p.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	return user.Role, nil
}

// Require checks that the identity holds one of the given roles. A missing
// user record and a role mismatch are both Forbidden; the caller gets no
// side effects either way.
func (p *Policy) Require(ctx context.Context, email string, roles ...string) error {
	user, err := p.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no account for %s: %w", email, domain.ErrForbidden)
		}
		return err
	}

	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}

	return fmt.Errorf("%s requires role %v: %w", email, roles, domain.ErrForbidden)
}
