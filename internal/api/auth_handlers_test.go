package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(email string) map[string]any {
	return map[string]any{
		"name":                  "Paul Atreides",
		"email":                 email,
		"password":              "SecurePassword123!",
		"password_confirmation": "SecurePassword123!",
		"client_info": map[string]any{
			"platform":    "Web",
			"client_name": "Shelfmark Web",
		},
	}
}

// signUp creates an account and returns the decoded auth response.
func (ts *testServer) signUp(t *testing.T, email string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signup", signupBody(email))
	require.Equal(t, http.StatusOK, resp.Code, "Signup failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	return envelope.Data
}

func TestSignup_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/signup", signupBody("paul@example.com"))

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.NotEmpty(t, envelope.Data.SessionID)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
	assert.Positive(t, envelope.Data.ExpiresIn)
	assert.Equal(t, "paul@example.com", envelope.Data.User.Email)
	assert.Equal(t, "Paul Atreides", envelope.Data.User.Name)
	assert.NotEmpty(t, envelope.Data.User.ProfileImage)
}

func TestSignup_NeverLeaksPasswordHash(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/signup", signupBody("paul@example.com"))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "password_hash")
	assert.NotContains(t, resp.Body.String(), "argon2id")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signUp(t, "paul@example.com")

	resp := ts.api.Post("/api/v1/auth/signup", signupBody("paul@example.com"))
	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testEnvelope[struct{}]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func TestSignup_PasswordMismatch(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	body := signupBody("paul@example.com")
	body["password_confirmation"] = "SomethingElse123!"

	resp := ts.api.Post("/api/v1/auth/signup", body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSignup_MissingEmail(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	body := signupBody("paul@example.com")
	delete(body, "email")

	resp := ts.api.Post("/api/v1/auth/signup", body)
	// Huma rejects missing required fields before the handler runs.
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSignin_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signUp(t, "paul@example.com")

	resp := ts.api.Post("/api/v1/auth/signin", map[string]any{
		"email":    "paul@example.com",
		"password": "SecurePassword123!",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "paul@example.com", envelope.Data.User.Email)
}

func TestSignin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signUp(t, "paul@example.com")

	resp := ts.api.Post("/api/v1/auth/signin", map[string]any{
		"email":    "paul@example.com",
		"password": "WrongPassword123!",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSignin_UnknownEmail(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/signin", map[string]any{
		"email":    "nobody@example.com",
		"password": "SecurePassword123!",
	})

	// Same status as a wrong password so the response does not reveal
	// which accounts exist.
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": signedUp.RefreshToken,
	})

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.NotEqual(t, signedUp.RefreshToken, envelope.Data.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": signedUp.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_InvalidToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": "not-a-real-token",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSignout_RevokesSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Post("/api/v1/auth/signout", map[string]any{
		"session_id": signedUp.SessionID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	// The session's refresh token no longer works.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": signedUp.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
