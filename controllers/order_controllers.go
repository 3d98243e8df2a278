package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// orderView is an order joined with its decoded snapshot for listings.
type orderView struct {
	ID        uint                   `json:"id"`
	UserEmail string                 `json:"user_email,omitempty"`
	Total     int                    `json:"total"`
	Status    string                 `json:"status"`
	Items     []models.SnapshotItem  `json:"items"`
	Address   models.SnapshotAddress `json:"address"`
	Date      string                 `json:"date"`
	Time      string                 `json:"time"`
	Meal      string                 `json:"meal"`
	CreatedAt time.Time              `json:"created_at"`
}

func newOrderView(o models.Order, userEmail string) orderView {
	// A snapshot that fails to decode leaves the item/address fields
	// zeroed; the order itself still lists.
	snap, _ := o.ParseSnapshot()
	return orderView{
		ID:        o.ID,
		UserEmail: userEmail,
		Total:     o.Total,
		Status:    o.Status,
		Items:     snap.Items,
		Address:   snap.Address,
		Date:      snap.Date,
		Time:      snap.Time,
		Meal:      snap.Meal,
		CreatedAt: o.CreatedAt,
	}
}

// CreateOrder freezes the request into a snapshot and opens the order in
// "pending". Creation always announces itself: one notification targeted
// at the address city (or "All" when the city is blank).
func (oc *OrderController) CreateOrder(c *gin.Context) {
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
		Items   []models.SnapshotItem  `json:"items"`
		Total   int                    `json:"total"`
		Address models.SnapshotAddress `json:"address"`
		Date    string                 `json:"date"`
		Time    string                 `json:"time"`
		Meal    string                 `json:"meal"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(req.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order must contain at least one item"))
		return
	}
	if req.Address == (models.SnapshotAddress{}) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("address is required"))
		return
	}

	snapshot, err := json.Marshal(models.OrderSnapshot{
		Items:   req.Items,
		Address: req.Address,
		Date:    req.Date,
		Time:    req.Time,
		Meal:    req.Meal,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order := models.Order{
		UserID:   userID,
		Total:    req.Total,
		Snapshot: string(snapshot),
		Status:   models.StatusPending,
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// The order is the source of truth; a failed notification write is
	// logged and the order stands.
	city := req.Address.City
	if city == "" {
		city = utils.CityAll
	}
	notif := models.Notification{
		Message: fmt.Sprintf("New order #%d received", order.ID),
		City:    city,
	}
	if err := oc.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to post notification for order %d: %v", order.ID, err)
	}

	utils.InfoLogger.Printf("Order #%d created by user %d (city=%s)", order.ID, userID, city)

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// ListMyOrders returns the caller's own orders, newest first, with the
// full snapshot decoded.
func (oc *OrderController) ListMyOrders(c *gin.Context) {
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

	var orders []models.Order
	if err := oc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o, ""))
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", views)
}

// ListAllOrders returns every order the administrator's city scope may
// see, newest first, joined with the owning user's email.
func (oc *OrderController) ListAllOrders(c *gin.Context) {
	adminCity := c.GetString("city")

	var orders []models.Order
	if err := oc.DB.Preload("User").Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		if !utils.CityVisible(adminCity, o.ResolvedCity()) {
			continue
		}
		views = append(views, newOrderView(o, o.User.Email))
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", views)
}

// UpdateOrderStatus moves an order to a new status. The administrator
// must be scoped for the order's snapshot city, and the new status must
// be a known label; beyond that any move is allowed, including skipping
// intermediate states. The change is announced with an "All"-targeted
// notification.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	adminCity := c.GetString("city")
	if !utils.CityVisible(adminCity, order.ResolvedCity()) {
		utils.RespondError(c, http.StatusForbidden, errors.New("order outside your city scope"))
		return
	}

	if !models.StatusTransitionAllowed(order.Status, req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notif := models.Notification{
		Message: fmt.Sprintf("Order #%d is now %s", order.ID, order.Status),
		City:    utils.CityAll,
	}
	if err := oc.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to post notification for order %d: %v", order.ID, err)
	}

	utils.InfoLogger.Printf("Order #%d status set to %s", order.ID, order.Status)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}
