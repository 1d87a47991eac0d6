package controller

import (
	"net/http"

	"cafedir/utils"

	"github.com/gin-gonic/gin"
)

// AdminController handles the admin login and session check. The credential
// pair comes from the environment; there is exactly one admin identity.
type AdminController struct {
	Username string
	Password string
}

func NewAdminController(username, password string) *AdminController {
	return &AdminController{Username: username, Password: password}
}

func (a *AdminController) Login(c *gin.Context) {
	type Request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username and password required",
		})
		return
	}

	if req.Username != a.Username || req.Password != a.Password {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized",
		})
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create session",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AdminCookieName, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
	})
}

func (a *AdminController) CheckAuth(c *gin.Context) {
	cookie, err := c.Cookie(utils.AdminCookieName)
	if err != nil || utils.ValidateAdminToken(cookie) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Unauthorized",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
