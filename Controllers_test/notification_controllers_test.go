package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/controllers"
	"github.com/cityfare/cityfare/middlewares"
	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/utils"
)

func setupNotificationTestDB(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		panic(err)
	}
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notificationCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notificationCtrl.GetRecent)

	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	admin.POST("/notifications", notificationCtrl.CreateNotification)
	return router
}

func getNotifications(t *testing.T, router *gin.Engine, path string) []map[string]interface{} {
	req, err := http.NewRequest("GET", path, nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestPostAndReadNotifications(t *testing.T) {
	utils.InitLogger()
	db := setupNotificationTestDB("notif_postread")
	router := setupNotificationRouter(db)

	token, err := utils.GenerateToken(1, "admin@example.com", "admin", "Pune")
	assert.NoError(t, err)

	w := authJSON(t, router, "POST", "/admin/notifications", token, map[string]string{
		"message": "Pune kitchen closed on Monday",
		"city":    "Pune",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// blank target city defaults to "All"
	w = authJSON(t, router, "POST", "/admin/notifications", token, map[string]string{
		"message": "New seasonal menu is live",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// reads are public and unfiltered: the Pune-targeted entry is
	// visible without any token or city match
	notifs := getNotifications(t, router, "/notifications")
	assert.Len(t, notifs, 2)
	cities := []string{notifs[0]["city"].(string), notifs[1]["city"].(string)}
	assert.Contains(t, cities, "Pune")
	assert.Contains(t, cities, "All")
}

func TestNotificationsOrderedByRecency(t *testing.T) {
	utils.InitLogger()
	db := setupNotificationTestDB("notif_recency")
	router := setupNotificationRouter(db)

	base := time.Now().Add(-time.Hour)
	for i, msg := range []string{"first", "second", "third"} {
		db.Create(&models.Notification{
			Message:   msg,
			City:      "All",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	notifs := getNotifications(t, router, "/notifications")
	assert.Len(t, notifs, 3)
	assert.Equal(t, "third", notifs[0]["message"])
	assert.Equal(t, "first", notifs[2]["message"])

	notifs = getNotifications(t, router, "/notifications?limit=2")
	assert.Len(t, notifs, 2)
	assert.Equal(t, "third", notifs[0]["message"])
}

func TestCreateNotificationRequiresMessage(t *testing.T) {
	utils.InitLogger()
	db := setupNotificationTestDB("notif_required")
	router := setupNotificationRouter(db)

	token, err := utils.GenerateToken(1, "admin@example.com", "admin", "All")
	assert.NoError(t, err)

	w := authJSON(t, router, "POST", "/admin/notifications", token, map[string]string{"city": "Delhi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
