package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetRecent returns the latest notifications, newest first, to any
// client. The target city is not applied as a read filter.
func (nc *NotificationController) GetRecent(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	var notifs []models.Notification
	if err := nc.DB.Order("created_at DESC").Limit(limit).Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent notifications", notifs)
}

// CreateNotification posts an announcement for a target city. A blank
// city defaults to "All".
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type request struct {
		Message string `json:"message" binding:"required"`
		City    string `json:"city"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	city := req.City
	if city == "" {
		city = utils.CityAll
	}

	notif := models.Notification{
		Message: req.Message,
		City:    city,
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Notification posted (city=%s): %s", notif.City, notif.Message)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}
