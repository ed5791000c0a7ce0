package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nitchakan-dev/filevault/http/controller/dto"
	"github.com/nitchakan-dev/filevault/utils"
	"golang.org/x/crypto/bcrypt"
)

func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Username and password are required")
		return
	}

	user, err := ctrl.Repository.UserRepo.FindByUsername(req.Username)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Login failed for unknown user '%s'", req.Username)
		utils.JSON401(c, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Login failed for user '%s'", req.Username)
		utils.JSON401(c, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, ctrl.Config.EnvConfig)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to sign token: %v", err)
		utils.JSON500(c, "Failed to generate token")
		return
	}

	secure := ctrl.Config.EnvConfig.Environment.Mode == "production"
	c.SetCookie("access_token", token, ctrl.Config.EnvConfig.JWT.Expire, "/", "", secure, true)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] User '%s' logged in", user.Username)
	utils.JSON200(c, gin.H{
		"message":      "Login successful",
		"redirect_url": "/admin",
	})
}

func (ctrl *Controller) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	tokenStr := utils.ExtractToken(c)
	if tokenStr != "" && ctrl.Infra.Redis != nil {
		// Revoke for the token's remaining lifetime.
		ttl := time.Duration(ctrl.Config.EnvConfig.JWT.Expire) * time.Second
		if parsed, err := utils.ParseToken(tokenStr, ctrl.Config.EnvConfig); err == nil && parsed.Valid {
			if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					if remaining := time.Until(exp.Time); remaining > 0 {
						ttl = remaining
					}
				}
			}
		}
		if err := ctrl.Infra.Redis.Set(ctx, "token:revoked:"+tokenStr, true, ttl); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed to revoke token: %v", err)
		}
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	utils.JSON200(c, gin.H{"message": "Logged out"})
}
