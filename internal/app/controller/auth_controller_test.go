package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	"github.com/flamingdiva/flamingdiva-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 168*time.Hour)
	authController := NewAuthController(authService, 15*time.Minute)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)

	return authController, router, testDB
}

func postJSON(router *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/auth/register", map[string]interface{}{
		"email":      "diva@example.com",
		"password":   "secret123",
		"first_name": "Diva",
		"last_name":  "Flame",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "diva@example.com", user["email"])
	assert.Equal(t, "user", user["role"])

	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	body := map[string]interface{}{
		"email":      "diva@example.com",
		"password":   "secret123",
		"first_name": "Diva",
	}
	first := postJSON(router, "/auth/register", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(router, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestAuthController_Register_InvalidBody(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	// Password below the minimum length
	w := postJSON(router, "/auth/register", map[string]interface{}{
		"email":      "diva@example.com",
		"password":   "abc",
		"first_name": "Diva",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Login_Success(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	require.Equal(t, http.StatusCreated, postJSON(router, "/auth/register", map[string]interface{}{
		"email":      "diva@example.com",
		"password":   "secret123",
		"first_name": "Diva",
	}).Code)

	w := postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "diva@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	tokens := response["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	require.Equal(t, http.StatusCreated, postJSON(router, "/auth/register", map[string]interface{}{
		"email":      "diva@example.com",
		"password":   "secret123",
		"first_name": "Diva",
	}).Code)

	w := postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "diva@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_Me(t *testing.T) {
	controller, router, testDB := setupAuthControllerTest(t)

	user := &model.User{
		Email:        "diva@example.com",
		PasswordHash: "hash",
		FirstName:    "Diva",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	router.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.Me(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	body := response["user"].(map[string]interface{})
	assert.Equal(t, "diva@example.com", body["email"])
	assert.Equal(t, "Diva", body["first_name"])
}

func TestAuthController_UpdateProfile(t *testing.T) {
	controller, router, testDB := setupAuthControllerTest(t)

	user := &model.User{
		Email:        "diva@example.com",
		PasswordHash: "hash",
		FirstName:    "Diva",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	router.PUT("/auth/me", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.UpdateProfile(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{
		"first_name": "Prima",
		"last_name":  "Donna",
	})
	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.User
	require.NoError(t, testDB.First(&updated, user.ID).Error)
	assert.Equal(t, "Prima", updated.FirstName)
	assert.Equal(t, "Donna", updated.LastName)
}
