package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/adanyl0v/go-errands/internal/config"
	"github.com/adanyl0v/go-errands/internal/delivery/http/v1"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	handler := v1.New(componentLogger("http"), newServices(), httpCfg.MaxBodyBytes)

	server := &http.Server{
		Addr:         net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:      withCORS(newRouter(handler), httpCfg.CORSAllowedOrigins),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

// newRouter builds the engine. Handlers pass *gin.Context on as the
// context of store and client calls, so it must expose the request
// context for a disconnecting client to cancel them.
func newRouter(handler v1.Handler) *gin.Engine {
	router := gin.New()
	router.ContextWithFallback = true

	router.Use(handler.HandleRequestID)
	router.Use(handler.HandleRequestLog)
	router.Use(gin.Recovery())
	router.Use(handler.HandleMaxBodyBytes)
	v1.RegisterRoutes(router, handler)
	return router
}

// withCORS answers preflight requests before they reach gin, so the
// routes do not need OPTIONS handlers.
func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
