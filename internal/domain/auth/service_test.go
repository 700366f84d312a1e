package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range f.byEmail {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwtService, DefaultServiceConfig()), repo
}

func TestRegister_DefaultsToEmployee(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jsmith",
		Email:    "jsmith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Stored hash verifies against the original password.
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123"))
	assert.NoError(t, err)
}

func TestRegister_ExplicitRole(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "password123",
		Role:     "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleManager, user.Role)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Email: "a@b.co", Password: "password123"}},
		{"missing email", RegisterRequest{Username: "a", Password: "password123"}},
		{"short password", RegisterRequest{Username: "a", Email: "a@b.co", Password: "short"}},
		{"mismatched confirmation", RegisterRequest{Username: "a", Email: "a@b.co", Password: "password123", RepeatPassword: "password124"}},
		{"unknown role", RegisterRequest{Username: "a", Email: "a@b.co", Password: "password123", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "first",
		Email:    "dup@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "second",
		Email:    "dup@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "taken",
		Email:    "one@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "taken",
		Email:    "two@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Username: "jsmith",
		Email:    "jsmith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, Credentials{
		Email:    "jsmith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token.Value)

	// The minted token carries the user's role.
	uc, err := svc.jwtService.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, string(RoleEmployee), uc.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "jsmith",
		Email:    "jsmith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, Credentials{Email: "nobody@example.com", Password: "password123"})
	_, _, errWrongPwd := svc.Login(ctx, Credentials{Email: "jsmith@example.com", Password: "wrongpassword"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPwd)
	// Same message and status for both failure modes.
	assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
	assert.Equal(t, apperror.GetHTTPStatus(errUnknown), apperror.GetHTTPStatus(errWrongPwd))
}
