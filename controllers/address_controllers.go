package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/utils"
)

type AddressController struct {
	DB *gorm.DB
}

func NewAddressController(db *gorm.DB) *AddressController {
	return &AddressController{DB: db}
}

// CreateAddress appends a shipping profile to the caller's address book.
func (ac *AddressController) CreateAddress(c *gin.Context) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	type request struct {
		Name     string `json:"name"`
		Line     string `json:"line" binding:"required"`
		Landmark string `json:"landmark"`
		Pincode  string `json:"pincode"`
		City     string `json:"city" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	addr := models.Address{
		UserID:   userID,
		Name:     req.Name,
		Line:     req.Line,
		Landmark: req.Landmark,
		Pincode:  req.Pincode,
		City:     req.City,
	}

	if err := ac.DB.Create(&addr).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Address saved", addr)
}

// ListAddresses returns the caller's 10 most recent addresses, newest
// first. The book is append-only, there is no update or delete.
func (ac *AddressController) ListAddresses(c *gin.Context) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var addrs []models.Address
	if err := ac.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(10).Find(&addrs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of addresses", addrs)
}
