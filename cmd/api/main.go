package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"blogapi/internal/server"
	"blogapi/internal/utils"
)

func main() {
	if err := utils.EnsureJWTReady(); err != nil {
		logrus.WithError(err).Fatal("Failed to load JWT secret")
	}

	srv, db, err := server.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize server")
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	if err := db.Close(); err != nil {
		logrus.WithError(err).Error("Database close failed")
	}
}
