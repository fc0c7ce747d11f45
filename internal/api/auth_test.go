package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers/mocks"
	"github.com/pageza/bangladiet/backend/internal/types"
)

func signupBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Nadia",
		"email":    "nadia@example.com",
		"password": "secret123",
		"age":      25,
		"height":   160,
		"weight":   55,
		"gender":   "female",
	}
}

func TestSignup(t *testing.T) {
	authService := new(mocks.MockAuthService)
	user := &models.User{ID: uuid.New(), Name: "Nadia", Email: "nadia@example.com"}
	user.SetTargets(nutrition.Targets{DailyCalories: 1896, DailyProtein: 66, DailyCarbs: 237, DailyFat: 53, BMI: 21.5})
	authService.On("Register", mock.MatchedBy(func(in service.RegisterInput) bool {
		return in.Email == "nadia@example.com" && in.HeightCm == 160 && in.WeightKg == 55
	})).Return(user, service.TargetSourceFallback, nil)

	r := newTestRouter(NewAuthHandler(authService))
	w, body := perform(t, r, http.MethodPost, "/api/v1/auth/signup", signupBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created successfully", body["message"])
	assert.Equal(t, user.ID.String(), body["userId"])
	assert.Equal(t, 1896.0, body["nutritionalData"].(map[string]interface{})["dailyCalories"])
	assert.Equal(t, "fallback", body["targetSource"])
	authService.AssertExpectations(t)
}

func TestSignup_Errors(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		authService := new(mocks.MockAuthService)
		req := signupBody()
		delete(req, "weight")

		w, body := perform(t, newTestRouter(NewAuthHandler(authService)), http.MethodPost, "/api/v1/auth/signup", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All required fields must be provided", body["error"])
		authService.AssertNotCalled(t, "Register", mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		authService := new(mocks.MockAuthService)
		authService.On("Register", mock.Anything).Return(nil, service.TargetSource(""), apperrors.ErrEmailTaken)

		w, body := perform(t, newTestRouter(NewAuthHandler(authService)), http.MethodPost, "/api/v1/auth/signup", signupBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EMAIL_TAKEN", body["code"])
	})
}

func TestSignin(t *testing.T) {
	authService := new(mocks.MockAuthService)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)}}
	user := &models.User{ID: uuid.New(), Email: "nadia@example.com"}
	authService.On("Login", "nadia@example.com", "secret123").Return("signed", claims, user, nil)
	authService.On("Login", "nadia@example.com", "wrong").Return("", nil, nil, apperrors.ErrInvalidCredentials)

	r := newTestRouter(NewAuthHandler(authService))

	w, body := perform(t, r, http.MethodPost, "/api/v1/auth/signin", map[string]string{"email": "nadia@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed", body["token"])
	assert.Equal(t, expires.Format(time.RFC3339), body["expiresAt"])

	w, body = perform(t, r, http.MethodPost, "/api/v1/auth/signin", map[string]string{"email": "nadia@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", body["error"])

	w, _ = perform(t, r, http.MethodPost, "/api/v1/auth/signin", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	authService := new(mocks.MockAuthService)
	claims := &types.TokenClaims{UserID: uuid.New()}
	claims.ID = "token-id"
	authService.On("ValidateToken", goodToken).Return(claims, nil)
	authService.On("Logout", claims).Return(nil)

	w, body := perform(t, newTestRouter(NewAuthHandler(authService)), http.MethodPost, "/api/v1/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "logged out successfully", body["message"])
	authService.AssertExpectations(t)
}
