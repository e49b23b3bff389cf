package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/http/controller/dto"
	"github.com/imgdose/imgdose-api/utils"
)

// Login checks the single shared admin credential and mints a session
// token for the console.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Failed to parse login request.")
		return
	}

	adminPassword := ctrl.Config.EnvConfig.Auth.AdminPassword
	if adminPassword == "" {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Login attempted but no admin password is configured")
		utils.JSON401(c, "Login is not configured.")
		return
	}

	if !utils.SecureCompare(req.Password, adminPassword) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Rejected login with invalid credentials")
		utils.JSON401(c, "Invalid credentials.")
		return
	}

	token, err := utils.GenerateToken(ctrl.Config.EnvConfig)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to sign session token")
		utils.JSON500(c, "Failed to issue token.")
		return
	}

	utils.JSON200(c, gin.H{"token": token})
}
