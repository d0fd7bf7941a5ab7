package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/controllers"
	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/security"
)

// PatientRoutes are doctor-only: every operation on a patient record is
// authorized by the caller's token role plus the per-patient assignment
// check inside the service.
func PatientRoutes(rg *gin.RouterGroup, ctrl *controllers.PatientController, jwtSecret string) {
	rg.Use(security.AuthMiddleware(jwtSecret), security.RequireRole(models.RoleDoctor))

	rg.GET("", ctrl.List)
	rg.GET("/:id", ctrl.Get)
	rg.POST("", ctrl.Create)
	rg.PUT("/:id", ctrl.Update)
	rg.DELETE("/:id", ctrl.Delete)
}
