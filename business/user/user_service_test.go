package user

import (
	"context"
	"fmt"
	"plantnet/business/access"
	"plantnet/domain"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[string]domain.User
	nextID uint
	writes int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = *user
	f.writes++
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, email, status string) error {
	u, ok := f.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	u.Status = status
	f.users[email] = u
	f.writes++
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, email, role, status string) error {
	u, ok := f.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	u.Role = role
	u.Status = status
	f.users[email] = u
	f.writes++
	return nil
}

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) SendEmail(_, toEmail, _, _ string) error {
	if m.fail {
		return fmt.Errorf("mailer down")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func newService(repo *fakeUserRepo, mailer *recordingMailer) *userService {
	return NewUserService(repo, validator.New(), mailer, access.NewPolicy(repo))
}

func TestUpsertUserIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &recordingMailer{}
	svc := newService(repo, mailer)
	ctx := context.Background()

	first, created, err := svc.UpsertUser(ctx, "c@plantnet.io", domain.User{FullName: "Carla"})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, domain.RoleCustomer, first.Role)
	require.Equal(t, domain.StatusNone, first.Status)

	second, created, err := svc.UpsertUser(ctx, "c@plantnet.io", domain.User{FullName: "Someone Else"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Carla", second.FullName)
	require.Len(t, repo.users, 1)
	require.Len(t, mailer.sent, 1)
}

func TestUpsertUserSurvivesMailerFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingMailer{fail: true})

	_, created, err := svc.UpsertUser(context.Background(), "c@plantnet.io", domain.User{FullName: "Carla"})
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, repo.users, 1)
}

func TestUpsertUserRejectsBadEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingMailer{})

	_, _, err := svc.UpsertUser(context.Background(), "not-an-email", domain.User{})
	require.Error(t, err)
	require.Empty(t, repo.users)
}

func TestGetUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["s@plantnet.io"] = domain.User{Email: "s@plantnet.io", Role: domain.RoleSeller}
	svc := newService(repo, &recordingMailer{})
	ctx := context.Background()

	role, err := svc.GetUserRole(ctx, "s@plantnet.io")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSeller, role)

	role, err = svc.GetUserRole(ctx, "unknown@plantnet.io")
	require.NoError(t, err)
	require.Empty(t, role)
}

func TestRequestSellerStatus(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["c@plantnet.io"] = domain.User{Email: "c@plantnet.io", Role: domain.RoleCustomer}
	svc := newService(repo, &recordingMailer{})
	ctx := context.Background()

	updated, err := svc.RequestSellerStatus(ctx, "c@plantnet.io")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRequested, updated.Status)

	// a pending application cannot be filed twice
	_, err = svc.RequestSellerStatus(ctx, "c@plantnet.io")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.RequestSellerStatus(ctx, "unknown@plantnet.io")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["admin@plantnet.io"] = domain.User{Email: "admin@plantnet.io", Role: domain.RoleAdmin}
	repo.users["c@plantnet.io"] = domain.User{Email: "c@plantnet.io", Role: domain.RoleCustomer, Status: domain.StatusRequested}
	svc := newService(repo, &recordingMailer{})
	ctx := context.Background()

	updated, err := svc.SetUserRole(ctx, "admin@plantnet.io", "c@plantnet.io", domain.RoleSeller)
	require.NoError(t, err)
	require.Equal(t, domain.RoleSeller, updated.Role)
	require.Equal(t, domain.StatusVerified, updated.Status)
}

func TestSetUserRoleForbiddenForNonAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["c@plantnet.io"] = domain.User{Email: "c@plantnet.io", Role: domain.RoleCustomer}
	repo.users["t@plantnet.io"] = domain.User{Email: "t@plantnet.io", Role: domain.RoleCustomer}
	svc := newService(repo, &recordingMailer{})

	writesBefore := repo.writes
	_, err := svc.SetUserRole(context.Background(), "c@plantnet.io", "t@plantnet.io", domain.RoleAdmin)
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.Equal(t, writesBefore, repo.writes)
	require.Equal(t, domain.RoleCustomer, repo.users["t@plantnet.io"].Role)
}

func TestSetUserRoleRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["admin@plantnet.io"] = domain.User{Email: "admin@plantnet.io", Role: domain.RoleAdmin}
	repo.users["c@plantnet.io"] = domain.User{Email: "c@plantnet.io", Role: domain.RoleCustomer}
	svc := newService(repo, &recordingMailer{})

	_, err := svc.SetUserRole(context.Background(), "admin@plantnet.io", "c@plantnet.io", "Superuser")
	require.Error(t, err)
}

func TestGetAllUsersAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["admin@plantnet.io"] = domain.User{Email: "admin@plantnet.io", Role: domain.RoleAdmin}
	repo.users["c@plantnet.io"] = domain.User{Email: "c@plantnet.io", Role: domain.RoleCustomer}
	svc := newService(repo, &recordingMailer{})
	ctx := context.Background()

	users, err := svc.GetAllUsers(ctx, "admin@plantnet.io")
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = svc.GetAllUsers(ctx, "c@plantnet.io")
	require.ErrorIs(t, err, domain.ErrForbidden)
}
