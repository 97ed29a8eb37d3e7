package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"blogapi/internal/models"
	"blogapi/internal/utils"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// Login exchanges form credentials for a bearer token. The form field is
// called "username" but carries the account email. Unknown email and
// wrong password get the same response so the caller cannot tell which
// one was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "username and password form fields are required",
		})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid Credentials"})
		return
	}

	if !utils.CheckPassword(password, user.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid Credentials"})
		return
	}

	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
