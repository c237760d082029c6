package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/gin-gonic/gin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

// Run serves router on cfg.HTTP.Address and blocks until ctx is canceled or
// the server fails. Cancellation drains open requests before returning.
func Run(ctx context.Context, cfg *config.Config, router *gin.Engine, logger logrus.FieldLogger) error {
	srv := newServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, router *gin.Engine) *http.Server {
	mountDocs(router, cfg.HTTP.SwaggerDir)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.HTTP.AllowedOrigins),
		gorillaHandlers.AllowedHeaders([]string{"X-Requested-With", "Authorization", "Content-Type"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
	)

	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           cors(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// mountDocs serves the OpenAPI document from dir under /swagger and the UI under /docs.
func mountDocs(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	router.StaticFS("/swagger", http.Dir(dir))
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/swagger.json"))))
}
