package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
)

type VoteHandler struct {
	db *gorm.DB
}

func NewVoteHandler(db *gorm.DB) *VoteHandler {
	return &VoteHandler{db: db}
}

// Cast toggles the requester's vote on a post. dir=1 adds the vote,
// dir=0 removes it. Both directions are explicit: re-adding an existing
// vote conflicts, removing a missing one is not found.
func (h *VoteHandler) Cast(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := h.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("post with id: %d was not found", input.PostID),
			})
			return
		}
		logrus.WithError(err).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
		return
	}

	var existing models.Vote
	lookupErr := h.db.Where("user_id = ? AND post_id = ?", currentUser.ID, input.PostID).
		First(&existing).Error
	if lookupErr != nil && !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		logrus.WithError(lookupErr).Error("Failed to fetch vote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
		return
	}
	found := lookupErr == nil

	if *input.Dir == 1 {
		if found {
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("user %d has already voted on post %d", currentUser.ID, input.PostID),
			})
			return
		}

		vote := models.Vote{UserID: currentUser.ID, PostID: input.PostID}
		if err := h.db.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{
					"error": fmt.Sprintf("user %d has already voted on post %d", currentUser.ID, input.PostID),
				})
				return
			}
			logrus.WithError(err).Error("Failed to add vote")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add vote"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "successfully added vote"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "vote does not exist"})
		return
	}

	if err := h.db.Where("user_id = ? AND post_id = ?", currentUser.ID, input.PostID).
		Delete(&models.Vote{}).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete vote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully deleted vote"})
}
