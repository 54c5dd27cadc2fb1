package service

import (
	"context"
	"testing"
	"time"

	"delicassy/internal/domain"
	"delicassy/internal/repository"
	"delicassy/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(expiry time.Duration) UserService {
	repo := repository.NewUserRepository(store.NewMemory("testdb"))
	return NewUserService(repo, "test-secret", expiry, zap.NewNop())
}

func TestProperty_RegistrationStoresHashedPasswords(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10 // bcrypt at cost 10
	properties := gopter.NewProperties(parameters)

	properties.Property("passwords are hashed with bcrypt and never stored as plaintext", prop.ForAll(
		func(local string, password string) bool {
			svc := newUserService(0)
			ctx := context.Background()

			user, err := svc.Register(ctx, RegisterInput{Name: "n", Email: local + "@example.com", Password: password})
			if err != nil {
				return false
			}
			if user.PasswordHash == password {
				return false
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				return false
			}
			cost, err := bcrypt.Cost([]byte(user.PasswordHash))
			return err == nil && cost == BcryptCost
		},
		gen.Identifier(),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) >= 8 && len(s) <= 64 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegisterDefaultsAndUniqueness(t *testing.T) {
	svc := newUserService(0)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "Ada@Example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "en", user.Language)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.True(t, store.ValidID(user.ID))

	_, err = svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newUserService(time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret-pass", Role: domain.RoleAdmin})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ADA@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	profile, err := svc.GetUserByID(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newUserService(0)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := newUserService(0)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u", Role: "admin"})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err = expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
