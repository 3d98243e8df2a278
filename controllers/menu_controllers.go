package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/services"
	"github.com/cityfare/cityfare/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Cache *services.MenuCache
}

func NewMenuController(db *gorm.DB, cache *services.MenuCache) *MenuController {
	return &MenuController{DB: db, Cache: cache}
}

// PublicList returns active items only. With a city filter, items tagged
// with that city or "All" are included; without one, every active item.
// Ordering is category then id so listings are stable.
func (mc *MenuController) PublicList(c *gin.Context) {
	city := c.Query("city")

	if items, ok := mc.Cache.Get(c.Request.Context(), city); ok {
		utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
		return
	}

	tx := mc.DB.Where("active = ?", true)
	if city != "" {
		tx = tx.Where("city = ? OR city = ?", city, utils.CityAll)
	}

	var items []models.MenuItem
	if err := tx.Order("category, id").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Set(c.Request.Context(), city, items)

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem inserts a new item. The identifier defaults to the
// current time in milliseconds when the caller leaves it blank.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	type request struct {
		ID               string `json:"id"`
		Category         string `json:"category"`
		Name             string `json:"name" binding:"required"`
		NameHindi        string `json:"name_hindi"`
		Description      string `json:"description"`
		DescriptionHindi string `json:"description_hindi"`
		Price            int    `json:"price"`
		City             string `json:"city"`
		AvailableFrom    string `json:"available_from"`
		AvailableTo      string `json:"available_to"`
		Active           *bool  `json:"active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := req.ID
	if id == "" {
		id = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	city := req.City
	if city == "" {
		city = utils.CityAll
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	item := models.MenuItem{
		ID:               id,
		Category:         req.Category,
		Name:             req.Name,
		NameHindi:        req.NameHindi,
		Description:      req.Description,
		DescriptionHindi: req.DescriptionHindi,
		Price:            req.Price,
		City:             city,
		AvailableFrom:    req.AvailableFrom,
		AvailableTo:      req.AvailableTo,
		Active:           active,
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())

	utils.InfoLogger.Printf("Menu item created: %s (%s, city=%s)", item.ID, item.Name, item.City)

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem applies a partial update. Only the fields below can be
// changed; the identifier is not among them, so orders that reference an
// item keep pointing at the same id.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id := c.Param("item_id")

	var item models.MenuItem
	if err := mc.DB.First(&item, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Category         *string `json:"category"`
		Name             *string `json:"name"`
		NameHindi        *string `json:"name_hindi"`
		Description      *string `json:"description"`
		DescriptionHindi *string `json:"description_hindi"`
		Price            *int    `json:"price"`
		City             *string `json:"city"`
		AvailableFrom    *string `json:"available_from"`
		AvailableTo      *string `json:"available_to"`
		Active           *bool   `json:"active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.NameHindi != nil {
		item.NameHindi = *req.NameHindi
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.DescriptionHindi != nil {
		item.DescriptionHindi = *req.DescriptionHindi
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.City != nil {
		item.City = *req.City
	}
	if req.AvailableFrom != nil {
		item.AvailableFrom = *req.AvailableFrom
	}
	if req.AvailableTo != nil {
		item.AvailableTo = *req.AvailableTo
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem removes an item. Deleting an id that does not exist is
// not an error, so repeated deletes are safe.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id := c.Param("item_id")

	if err := mc.DB.Delete(&models.MenuItem{}, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}
