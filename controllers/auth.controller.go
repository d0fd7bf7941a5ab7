package controllers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/security"
)

// AuthAPI is the credential service surface the controller needs.
type AuthAPI interface {
	SignUp(email, password, fullName, role string) (*models.User, error)
	LogIn(email, password string) (*models.User, error)
}

type AuthController struct {
	svc       AuthAPI
	jwtSecret string
}

func NewAuthController(svc AuthAPI, jwtSecret string) *AuthController {
	return &AuthController{svc: svc, jwtSecret: jwtSecret}
}

type SignUpInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

func (ctrl *AuthController) SignUp(c *gin.Context) {
	var input SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}

	user, err := ctrl.svc.SignUp(input.Email, input.Password, input.FullName, input.Role)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type LogInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) LogIn(c *gin.Context) {
	var input LogInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}

	user, err := ctrl.svc.LogIn(input.Email, input.Password)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	token, err := security.SignAccessToken(ctrl.jwtSecret, user.ID, user.Role)
	if err != nil {
		security.SendError(c, http.StatusInternalServerError, security.CodeDatabaseError, "Internal error", "Failed to generate access token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// HealthCheck reports whether the database connection is alive.
func HealthCheck(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	}
}
