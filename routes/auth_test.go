package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSignup(t *testing.T) {
	t.Run("valid signup returns 201 with token and user", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		payload := signupUser(t, r, "a@x.com", false)
		assert.Equal(t, "a@x.com", payload.User.Email)
		assert.False(t, payload.User.IsPremium)
	})

	t.Run("response body never carries the password hash", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		w, _ := doJSON(t, r, http.MethodPost, "/api/auth/user/signup", "", gin.H{
			"email":    "a@x.com",
			"password": "abcdef",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "abcdef")
	})

	t.Run("invalid email and short password list every violation", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		w, res := doJSON(t, r, http.MethodPost, "/api/auth/user/signup", "", gin.H{
			"email":    "not-an-email",
			"password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, res.Message, "Email")
		assert.Contains(t, res.Message, "Password")
	})

	t.Run("duplicate email is a 400 even across roles", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		signupAdmin(t, r, "a@x.com")
		w, _ := doJSON(t, r, http.MethodPost, "/api/auth/user/signup", "", gin.H{
			"email":    "a@x.com",
			"password": "abcdef",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminSignup(t *testing.T) {
	r, _ := setupTestRouter(t)
	payload := signupAdmin(t, r, "boss@x.com")
	assert.Equal(t, "admin", payload.User.Role)
	assert.Equal(t, "boss@x.com", payload.User.Email)
}

func TestLogin(t *testing.T) {
	t.Run("user login with correct credentials", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		signupUser(t, r, "a@x.com", true)

		w, res := doJSON(t, r, http.MethodPost, "/api/auth/user/login", "", gin.H{
			"email":    "a@x.com",
			"password": "abcdef",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var payload authPayload
		require.NoError(t, json.Unmarshal(res.Data, &payload))
		assert.NotEmpty(t, payload.Token)
		assert.True(t, payload.User.IsPremium)
	})

	t.Run("admin account through the user endpoint fails", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		signupAdmin(t, r, "boss@x.com")

		w, _ := doJSON(t, r, http.MethodPost, "/api/auth/user/login", "", gin.H{
			"email":    "boss@x.com",
			"password": "abcdef",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password and unknown email respond identically", func(t *testing.T) {
		r, _ := setupTestRouter(t)
		signupUser(t, r, "a@x.com", false)

		wWrongPass, resWrongPass := doJSON(t, r, http.MethodPost, "/api/auth/user/login", "", gin.H{
			"email":    "a@x.com",
			"password": "wrong!",
		})
		wUnknown, resUnknown := doJSON(t, r, http.MethodPost, "/api/auth/user/login", "", gin.H{
			"email":    "ghost@x.com",
			"password": "abcdef",
		})
		assert.Equal(t, http.StatusUnauthorized, wWrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
		assert.Equal(t, resWrongPass.Message, resUnknown.Message)
	})
}

func TestLogout(t *testing.T) {
	r, _ := setupTestRouter(t)
	w, res := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)
}
