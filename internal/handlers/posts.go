package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

// postRow is the flat shape of the posts-with-votes aggregation query.
type postRow struct {
	ID        int
	Title     string
	Content   string
	Published bool
	UserID    int
	CreatedAt time.Time
	Votes     int64
}

func (r postRow) toPost() models.Post {
	return models.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Published: r.Published,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

// withVotes builds the posts query left-joined with vote counts, grouped
// by post. Posts with no votes count as zero.
func (h *PostHandler) withVotes() *gorm.DB {
	return h.db.Model(&models.Post{}).
		Select("posts.id, posts.title, posts.content, posts.published, posts.user_id, posts.created_at, count(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

// List returns all posts visible to any authenticated user, filtered by
// title substring and paged by limit/skip.
func (h *PostHandler) List(c *gin.Context) {
	params := parseListParams(c)

	var rows []postRow
	err := h.withVotes().
		Where("posts.title LIKE ?", "%"+params.Search+"%").
		Order("posts.id").
		Limit(params.Limit).
		Offset(params.Skip).
		Scan(&rows).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	users, err := h.loadUsers(rows)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch post owners")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	results := make([]models.PostOut, 0, len(rows))
	for _, row := range rows {
		post := row.toPost()
		post.User = users[row.UserID]
		results = append(results, models.PostOut{Post: post, Votes: row.Votes})
	}

	c.JSON(http.StatusOK, results)
}

// loadUsers batch-fetches the owners referenced by the result rows.
func (h *PostHandler) loadUsers(rows []postRow) (map[int]models.User, error) {
	ids := make([]int, 0, len(rows))
	seen := make(map[int]bool)
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			ids = append(ids, row.UserID)
		}
	}

	users := make(map[int]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var owners []models.User
	if err := h.db.Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	for _, owner := range owners {
		users[owner.ID] = owner
	}
	return users, nil
}

// Get returns a single post with its vote count.
func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id must be an integer"})
		return
	}

	var row postRow
	result := h.withVotes().Where("posts.id = ?", id).Scan(&row)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("post with id: %d was not found", id),
		})
		return
	}

	post := row.toPost()
	if err := h.db.First(&post.User, row.UserID).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch post owner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, models.PostOut{Post: post, Votes: row.Votes})
}

// Create stores a new post owned by the requester, then re-reads the row
// so store-computed defaults surface in the response.
func (h *PostHandler) Create(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	post := models.Post{
		Title:     input.Title,
		Content:   input.Content,
		Published: published,
		UserID:    currentUser.ID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		logrus.WithError(err).Error("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	if err := h.db.Preload("User").First(&post, post.ID).Error; err != nil {
		logrus.WithError(err).Error("Failed to reload post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update replaces title, content and published on a post owned by the
// requester. Identity fields stay untouched.
func (h *PostHandler) Update(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id must be an integer"})
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := h.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("post with id: %d was not found", id),
			})
			return
		}
		logrus.WithError(err).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	if post.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You are not authorized to perform this action.",
		})
		return
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	updates := map[string]interface{}{
		"title":     input.Title,
		"content":   input.Content,
		"published": published,
	}

	// The loaded owner association must not ride along into the update.
	if err := h.db.Model(&post).Omit(clause.Associations).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("Failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Published = published

	c.JSON(http.StatusOK, post)
}

// Delete removes a post owned by the requester.
func (h *PostHandler) Delete(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id must be an integer"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("post with id: %d was not found", id),
			})
			return
		}
		logrus.WithError(err).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if post.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You are not authorized to perform this action.",
		})
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}
