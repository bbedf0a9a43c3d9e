package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamind/stockmanager-api/internal/application/dto"
	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error      { delete(r.users, id); return nil }

func testJWTConfig() JWTConfig {
	return JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "stockmanager-test"}
}

func TestRegisterAndLogin(t *testing.T) {
	uc := New(newFakeUserRepo(), testJWTConfig())

	user, err := uc.Register(dto.RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Password: "s3cret-pass",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "amani", user.Username)
	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, "active", user.Status)

	resp, err := uc.Login(dto.LoginRequest{Username: "amani", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// le token porte bien l'identité et le rôle
	userID, role, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestRegister_DefaultRoleSeller(t *testing.T) {
	uc := New(newFakeUserRepo(), testJWTConfig())

	user, err := uc.Register(dto.RegisterRequest{
		Username: "bahati",
		Email:    "bahati@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, user.Role)
}

func TestRegister_Duplicates(t *testing.T) {
	uc := New(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Register(dto.RegisterRequest{Username: "amani", Email: "amani@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Username: "amani", Email: "autre@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Register(dto.RegisterRequest{Username: "autre", Email: "amani@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_InvalidInput(t *testing.T) {
	uc := New(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Register(dto.RegisterRequest{Username: "", Email: "a@b.c", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Username: "x", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Username: "x", Email: "a@b.c", Password: "s3cret-pass", Role: "superadmin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Failures(t *testing.T) {
	uc := New(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Register(dto.RegisterRequest{Username: "amani", Email: "amani@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "amani", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
