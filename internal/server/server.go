package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"blogapi/internal/database"
	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
)

type Server struct {
	db      *database.Database
	handler *handlers.Handler
}

// New wires the database, handlers and router into an http.Server. The
// returned Database is handed back so main can close it at shutdown.
func New() (*http.Server, *database.Database, error) {
	db, err := database.New()
	if err != nil {
		return nil, nil, err
	}

	s := &Server{
		db:      db,
		handler: handlers.NewHandler(db.DB()),
	}

	router := s.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	srv := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv, db, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "welcome to the blog api"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Public routes
	r.POST("/users", s.handler.User.Create)
	r.GET("/users/:id", s.handler.User.Get)
	r.POST("/login", s.handler.Auth.Login)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(s.db.DB()))
	{
		protected.GET("/posts", s.handler.Post.List)
		protected.GET("/posts/:id", s.handler.Post.Get)
		protected.POST("/posts", s.handler.Post.Create)
		protected.PUT("/posts/:id", s.handler.Post.Update)
		protected.DELETE("/posts/:id", s.handler.Post.Delete)

		protected.POST("/votes", s.handler.Vote.Cast)
	}

	return r
}

// NewRouter builds a router over an existing database handle. Used by
// integration tests.
func NewRouter(db *database.Database) *gin.Engine {
	s := &Server{
		db:      db,
		handler: handlers.NewHandler(db.DB()),
	}
	return s.RegisterRoutes()
}
