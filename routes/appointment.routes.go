package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/controllers"
	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/security"
)

// AppointmentRoutes are shared between doctors and patients; the listing and
// update handlers branch on the caller's role, the remaining operations are
// doctor-only.
func AppointmentRoutes(rg *gin.RouterGroup, ctrl *controllers.AppointmentController, jwtSecret string) {
	rg.Use(security.AuthMiddleware(jwtSecret))

	rg.GET("", ctrl.List)
	rg.PUT("/:id", ctrl.Update)

	doctor := rg.Group("")
	doctor.Use(security.RequireRole(models.RoleDoctor))
	{
		doctor.GET("/patient/:patientId", ctrl.ListForPatient)
		doctor.POST("", ctrl.Create)
		doctor.DELETE("/:id", ctrl.Delete)
	}
}
