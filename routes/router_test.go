package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/signalroom/signalroom-be/controllers"
	"github.com/signalroom/signalroom-be/db/memory"
	"github.com/signalroom/signalroom-be/services"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *memory.MemoryDB) {
	gin.SetMode(gin.TestMode)
	mdb := memory.GetDatabase()
	tokens := services.NewTokenService("test-secret", services.TokenTTL)

	r := gin.New()
	api := r.Group("/api")
	AddAuthRoutes(api, controllers.NewAuthController(mdb, tokens))
	AddSignalRoutes(api, mdb, tokens)
	AddFeedRoutes(api, mdb, tokens)
	return r, mdb
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w, &res
}

type authUserPayload struct {
	Id        int64  `json:"id"`
	Email     string `json:"email"`
	IsPremium bool   `json:"isPremium"`
	Role      string `json:"role"`
}

type authPayload struct {
	Token string          `json:"token"`
	User  authUserPayload `json:"user"`
}

func signup(t *testing.T, r *gin.Engine, path, email string, premium bool) *authPayload {
	w, res := doJSON(t, r, http.MethodPost, path, "", gin.H{
		"email":     email,
		"password":  "abcdef",
		"isPremium": premium,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var payload authPayload
	require.NoError(t, json.Unmarshal(res.Data, &payload))
	require.NotEmpty(t, payload.Token)
	return &payload
}

func signupUser(t *testing.T, r *gin.Engine, email string, premium bool) *authPayload {
	return signup(t, r, "/api/auth/user/signup", email, premium)
}

func signupAdmin(t *testing.T, r *gin.Engine, email string) *authPayload {
	return signup(t, r, "/api/auth/admin/signup", email, false)
}
