package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/db/memory"
	"github.com/signalroom/signalroom-be/model"
	"github.com/signalroom/signalroom-be/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *memory.MemoryDB, *services.TokenService) {
	gin.SetMode(gin.TestMode)
	mdb := memory.GetDatabase()
	tokens := services.NewTokenService("test-secret", services.TokenTTL)

	r := gin.New()
	r.GET("/probe", Auth(mdb, tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": MustGetUser(c).Id})
	})
	r.GET("/admin-probe", Auth(mdb, tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mdb, tokens
}

func createUser(t *testing.T, mdb *memory.MemoryDB, email string, role model.Role) int64 {
	id, err := mdb.CreateUser(context.Background(), &appDb.CreateUser{
		Email:        email,
		PasswordHash: "$2a$10$irrelevant",
		Role:         role,
	})
	require.NoError(t, err)
	return id
}

func probe(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	t.Run("missing header is a 401", func(t *testing.T) {
		r, _, _ := setupAuthTest(t)
		w := probe(r, "/probe", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer header is a 401", func(t *testing.T) {
		r, _, _ := setupAuthTest(t)
		w := probe(r, "/probe", "Basic abcdef")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token is a 401", func(t *testing.T) {
		r, _, _ := setupAuthTest(t)
		w := probe(r, "/probe", "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for a deleted user is a 401", func(t *testing.T) {
		r, _, tokens := setupAuthTest(t)
		token, err := tokens.Issue(9999)
		require.NoError(t, err)
		w := probe(r, "/probe", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token attaches the resolved user", func(t *testing.T) {
		r, mdb, tokens := setupAuthTest(t)
		userId := createUser(t, mdb, "a@x.com", model.RoleUser)
		token, err := tokens.Issue(userId)
		require.NoError(t, err)

		w := probe(r, "/probe", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":1`)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("non-admin is a 403", func(t *testing.T) {
		r, mdb, tokens := setupAuthTest(t)
		userId := createUser(t, mdb, "a@x.com", model.RoleUser)
		token, err := tokens.Issue(userId)
		require.NoError(t, err)

		w := probe(r, "/admin-probe", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		r, mdb, tokens := setupAuthTest(t)
		adminId := createUser(t, mdb, "boss@x.com", model.RoleAdmin)
		token, err := tokens.Issue(adminId)
		require.NoError(t, err)

		w := probe(r, "/admin-probe", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
