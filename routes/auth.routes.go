package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/controllers"
)

func AuthRoutes(rg *gin.RouterGroup, ctrl *controllers.AuthController) {
	rg.POST("/signup", ctrl.SignUp)
	rg.POST("/login", ctrl.LogIn)
}
