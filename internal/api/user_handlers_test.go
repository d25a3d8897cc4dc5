package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func TestGetCurrentUser_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Get("/api/v1/users/me", bearer(signedUp.AccessToken))

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[UserResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, envelope.Data.ID)
	assert.Equal(t, "paul@example.com", envelope.Data.Email)
}

func TestGetCurrentUser_NoToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/users/me")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCurrentUser_GarbageToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/users/me", bearer("v4.local.garbage"))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdateAccount_Name(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me", bearer(signedUp.AccessToken), map[string]any{
		"name": "Muad'Dib",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[UserResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "Muad'Dib", envelope.Data.Name)
	assert.Equal(t, "paul@example.com", envelope.Data.Email)
}

func TestUpdateAccount_EmailTaken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.signUp(t, "leto@example.com")
	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me", bearer(signedUp.AccessToken), map[string]any{
		"email": "leto@example.com",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestUpdateAccount_NothingToUpdate(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me", bearer(signedUp.AccessToken), map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateAccount_ChangePassword(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me", bearer(signedUp.AccessToken), map[string]any{
		"current_password": "SecurePassword123!",
		"new_password":     "EvenMoreSecure456!",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Old password no longer signs in, the new one does.
	resp = ts.api.Post("/api/v1/auth/signin", map[string]any{
		"email":    "paul@example.com",
		"password": "SecurePassword123!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/auth/signin", map[string]any{
		"email":    "paul@example.com",
		"password": "EvenMoreSecure456!",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUpdateAccount_ChangePasswordWrongCurrent(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me", bearer(signedUp.AccessToken), map[string]any{
		"current_password": "NotMyPassword!",
		"new_password":     "EvenMoreSecure456!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdateProfileImage(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	signedUp := ts.signUp(t, "paul@example.com")

	resp := ts.api.Put("/api/v1/users/me/profile-image", bearer(signedUp.AccessToken), map[string]any{
		"profile_image": "https://example.com/avatars/paul.png",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[UserResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/avatars/paul.png", envelope.Data.ProfileImage)
}
