package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// Login -> return JWT carrying the administrator's city scope.
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, "admin", admin.City)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin login: %s (city=%s)", admin.Email, admin.City)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"admin_id": admin.ID,
		"name":     admin.Name,
		"email":    admin.Email,
		"city":     admin.City,
		"token":    token,
	})
}

// CreateAdmin adds an administrator. A blank city defaults to the "All"
// wildcard scope.
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		City     string `json:"city"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	if err := ac.DB.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	city := req.City
	if city == "" {
		city = utils.CityAll
	}

	admin := models.Admin{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		City:     city,
	}

	if err := ac.DB.Create(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New admin created: %s (city=%s)", admin.Email, admin.City)

	utils.RespondJSON(c, http.StatusCreated, "Admin created", gin.H{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"city":     admin.City,
	})
}

// ListAdmins returns every administrator account. Password hashes are
// excluded at the model level.
func (ac *AdminController) ListAdmins(c *gin.Context) {
	var admins []models.Admin
	if err := ac.DB.Find(&admins).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All admins", admins)
}
