package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/router"
	"github.com/cityfare/cityfare/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndOrdering walks the main flow:
// 1. register a user, log an admin in
// 2. admin publishes a Delhi menu item
// 3. user browses the Delhi menu and places an order
// 4. the order shows up in the notification feed and the admin view
// 5. admin marks it delivered, user sees the new status
func TestEndToEndOrdering(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, nil)

	userToken := registerUser(t, r)
	adminToken := loginAdmin(t, r)

	createMenuItem(t, r, adminToken)
	assertMenuVisible(t, r)

	orderID := placeOrder(t, r, userToken)
	assertNotificationFeedMentions(t, r, fmt.Sprintf("order #%d", orderID))
	assertAdminSeesOrder(t, r, adminToken, orderID)

	markDelivered(t, r, adminToken, orderID)
	assertUserSeesStatus(t, r, userToken, "delivered")
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.MenuItem{},
		&models.Order{},
		&models.Address{},
		&models.Notification{},
	)
	assert.NoError(t, err)

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	db.Create(&models.Admin{Name: "Root", Email: "root@cityfare.test", Password: string(hashed), City: "All"})

	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if payload != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req, err := http.NewRequest(method, path, &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func registerUser(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, "POST", "/register", "", map[string]string{
		"name":     "Ila",
		"email":    "ila@cityfare.test",
		"password": "user-secret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	token, _ := decodeData(t, w)["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, "POST", "/admin/login", "", map[string]string{
		"email":    "root@cityfare.test",
		"password": "admin-secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeData(t, w)["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createMenuItem(t *testing.T, r *gin.Engine, adminToken string) {
	w := doJSON(t, r, "POST", "/admin/menu", adminToken, map[string]interface{}{
		"id":       "l1",
		"category": "lunch",
		"name":     "Rajma Chawal",
		"price":    85,
		"city":     "Delhi",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func assertMenuVisible(t *testing.T, r *gin.Engine) {
	w := doJSON(t, r, "GET", "/menu?city=Delhi", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rajma Chawal")
}

func placeOrder(t *testing.T, r *gin.Engine, userToken string) uint {
	w := doJSON(t, r, "POST", "/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": "l1", "name": "Rajma Chawal", "price": 85, "quantity": 1},
		},
		"total":   85,
		"address": map[string]string{"line": "12 MG Road", "city": "Delhi"},
		"date":    "2026-09-02",
		"time":    "13:00",
		"meal":    "lunch",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "pending", data["status"])
	return uint(data["order_id"].(float64))
}

func assertNotificationFeedMentions(t *testing.T, r *gin.Engine, needle string) {
	w := doJSON(t, r, "GET", "/notifications", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), needle)
}

func assertAdminSeesOrder(t *testing.T, r *gin.Engine, adminToken string, orderID uint) {
	w := doJSON(t, r, "GET", "/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, float64(orderID), resp.Data[0]["id"])
	assert.Equal(t, "ila@cityfare.test", resp.Data[0]["user_email"])
}

func markDelivered(t *testing.T, r *gin.Engine, adminToken string, orderID uint) {
	w := doJSON(t, r, "PUT", fmt.Sprintf("/admin/orders/%d", orderID), adminToken, map[string]string{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func assertUserSeesStatus(t *testing.T, r *gin.Engine, userToken, status string) {
	w := doJSON(t, r, "GET", "/orders", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, status, resp.Data[0]["status"])
}
