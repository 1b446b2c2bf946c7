package auth

import (
	"context"
	"testing"
	"time"

	"medq/internal/shared/config"
	"medq/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = 15 * time.Minute
	cfg.JWT.RefreshExpiresIn = 7 * 24 * time.Hour
	return cfg
}

func TestService_RegisterAlwaysCreatesPatient(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, string(users.RolePatient), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored := repo.byEmail["asha@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	req := &RegisterRequest{FirstName: "Asha", LastName: "Verma", Email: "asha@example.com", Password: "secret123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestService_CreateStaff(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())
	facilityID := uuid.New()

	resp, err := svc.CreateStaff(context.Background(), &CreateStaffRequest{
		FirstName:  "Meera",
		LastName:   "Iyer",
		Email:      "meera@medq.health",
		Password:   "secret123",
		Role:       string(users.RoleDoctor),
		FacilityID: facilityID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(users.RoleDoctor), resp.Role)
	require.NotNil(t, resp.FacilityID)
	assert.Equal(t, facilityID, *resp.FacilityID)
}

func TestService_CreateStaffRejectsPatientRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.CreateStaff(context.Background(), &CreateStaffRequest{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Password:  "secret123",
		Role:      string(users.RolePatient),
	})
	require.Error(t, err)
}

func TestService_LoginAndValidate(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha", LastName: "Verma", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, string(users.RolePatient), claims.Role)
}

func TestService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha", LastName: "Verma", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "asha@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RefreshToken(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha", LastName: "Verma", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token must not be accepted as a refresh token.
	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
