package access

import (
	"context"
	"fmt"
	"plantnet/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return u, nil
}

func TestResolveRole(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]domain.User{
		"admin@plantnet.io": {Email: "admin@plantnet.io", Role: domain.RoleAdmin},
	}}
	policy := NewPolicy(repo)

	role, err := policy.ResolveRole(context.Background(), "admin@plantnet.io")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	role, err = policy.ResolveRole(context.Background(), "ghost@plantnet.io")
	require.NoError(t, err)
	require.Empty(t, role)
}

func TestRequire(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]domain.User{
		"seller@plantnet.io": {Email: "seller@plantnet.io", Role: domain.RoleSeller},
	}}
	policy := NewPolicy(repo)
	ctx := context.Background()

	require.NoError(t, policy.Require(ctx, "seller@plantnet.io", domain.RoleSeller))
	require.NoError(t, policy.Require(ctx, "seller@plantnet.io", domain.RoleSeller, domain.RoleAdmin))

	err := policy.Require(ctx, "seller@plantnet.io", domain.RoleAdmin)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// unknown identity is Forbidden, not NotFound
	err = policy.Require(ctx, "ghost@plantnet.io", domain.RoleCustomer)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

// Role changes must be visible on the next check; nothing may be cached.
func TestRequireSeesRoleChange(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]domain.User{
		"c@plantnet.io": {Email: "c@plantnet.io", Role: domain.RoleCustomer},
	}}
	policy := NewPolicy(repo)
	ctx := context.Background()

	require.ErrorIs(t, policy.Require(ctx, "c@plantnet.io", domain.RoleSeller), domain.ErrForbidden)

	u := repo.users["c@plantnet.io"]
	u.Role = domain.RoleSeller
	repo.users["c@plantnet.io"] = u

	require.NoError(t, policy.Require(ctx, "c@plantnet.io", domain.RoleSeller))
}
