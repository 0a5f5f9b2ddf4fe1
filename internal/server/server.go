package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"messageboard/backend/docs"
	"messageboard/backend/internal/handler"
	"messageboard/backend/internal/logger"
	"messageboard/backend/internal/views"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine: middleware, templates, board routes and the Swagger UI.
func NewRouter(h *handler.MessageHandler, log *zap.Logger) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.Use(logger.Middleware(log), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	// Swagger route
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	h.Register(router)
	return router, nil
}

// Run serves router on addr until ctx is cancelled, then shuts down gracefully.
// onShutdown runs before in-flight requests are drained, so long-lived streams can be ended.
func Run(ctx context.Context, addr string, router http.Handler, log *zap.Logger, onShutdown func()) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if onShutdown != nil {
		onShutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
