package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/api/middleware"
	"github.com/qs3c/resdl_go_server/internal/model/dto"
	"github.com/qs3c/resdl_go_server/internal/pkg/response"
	"github.com/qs3c/resdl_go_server/internal/repository"
	"github.com/qs3c/resdl_go_server/internal/service"
	"github.com/qs3c/resdl_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testHandlerConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Billing: config.BillingConfig{
			PlatformFeeRate:        0.2,
			DefaultDailyQuota:      0,
			DefaultDownloadCredits: 3,
			VipLevels: map[string]config.VipLevelConfig{
				"1": {Name: "VIP", DiscountRate: 9, DailyQuota: 10},
				"2": {Name: "SVIP", DiscountRate: 8, DailyQuota: 20},
			},
		},
	}
}

// fakeAuth 绕过 JWT 校验，直接把用户 ID 放进上下文
func fakeAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func setupAuthHandler(t *testing.T) (*gorm.DB, *AuthHandler) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	authService := service.NewAuthService(repository.NewUserRepository(db), testHandlerConfig())
	return db, NewAuthHandler(authService)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	_, handler := setupAuthHandler(t)

	router := gin.New()
	router.POST("/register", handler.Register)

	req := dto.RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "password123",
	}
	w := performRequest(router, http.MethodPost, "/register", req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	_, handler := setupAuthHandler(t)

	router := gin.New()
	router.POST("/register", handler.Register)

	// 密码太短，binding 校验拦下
	req := dto.RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "short",
	}
	w := performRequest(router, http.MethodPost, "/register", req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	db, handler := setupAuthHandler(t)

	testutil.TestUser(t, db, testutil.WithEmail("taken@example.com"))

	router := gin.New()
	router.POST("/register", handler.Register)

	req := dto.RegisterRequest{
		Username: "another",
		Email:    "taken@example.com",
		Password: "password123",
	}
	w := performRequest(router, http.MethodPost, "/register", req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	_, handler := setupAuthHandler(t)

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)

	performRequest(router, http.MethodPost, "/register", dto.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})

	w := performRequest(router, http.MethodPost, "/login", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	_, handler := setupAuthHandler(t)

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)

	performRequest(router, http.MethodPost, "/register", dto.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})

	w := performRequest(router, http.MethodPost, "/login", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrongpassword",
	})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}
