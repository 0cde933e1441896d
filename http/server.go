package http

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/thanhminhmr/go-errtrace/exception"
	"github.com/thanhminhmr/go-errtrace/log"
	"go.uber.org/fx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const errorInternal = exception.String("Internal Server Error")

func NewServer(
	logger *zerolog.Logger,
	lifecycle fx.Lifecycle,
	config *ServerConfig,
	extraConfig *ServerExtraConfig,
	renderer *log.Renderer,
) chi.Router {
	// create route
	router := chi.NewRouter()
	// create the http server
	server := httpServer{
		logger:   logger,
		renderer: renderer,
		router:   router,
		server: http.Server{
			Addr:              ":" + strconv.FormatUint(uint64(config.Port), 10),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(extraConfig.ReadHeaderTimeout) * time.Second,
			IdleTimeout:       time.Duration(extraConfig.IdleTimeout) * time.Second,
			MaxHeaderBytes:    int(extraConfig.MaxHeaderBytes),
		},
	}
	// set a sane default middleware stack
	router.Use(
		server.recoverer,
		middleware.StripSlashes,
	)
	// add to lifecycle
	lifecycle.Append(fx.Hook{
		OnStart: server.onStart,
		OnStop:  server.onStop,
	})
	return router
}

type httpServer struct {
	logger   *zerolog.Logger
	renderer *log.Renderer
	router   *chi.Mux
	server   http.Server
}

func (s *httpServer) onStart(_ context.Context) error {
	// dump all routes
	s.logger.Info().Msg("Listing all routes...")
	if err := chi.Walk(s.router, s.dumpRoutes); err != nil {
		s.logger.Error().Err(err).Msg("Error walking routes")
		return err
	}
	s.logger.Info().Msg("Listed all routes")
	// start the server
	go s.serve()
	return nil
}

func (s *httpServer) serve() {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Start serving")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("Shutdown with error")
	}
}

func (s *httpServer) onStop(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down...")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Shutdown with error")
		return err
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

func (s *httpServer) dumpRoutes(
	method string,
	route string,
	handler http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) error {
	s.logger.Info().
		Stringer("handler", log.Func(handler)).
		Array("middlewares", log.Funcs(middlewares)).
		Msgf("Route: %s %s", method, route)
	return nil
}

func (s *httpServer) recoverer(next http.Handler) http.Handler {
	return Recoverer(s.logger, s.renderer)(next)
}

// Recoverer logs each request and its response. A panic of the next handler is
// logged with its stack trace and stack hash, and answered with 500 Internal
// Server Error. http.ErrAbortHandler is re-panicked as net/http expects.
func Recoverer(logger *zerolog.Logger, renderer *log.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := logger.With().Str("request_id", fmt.Sprintf("%016x", rand.Uint64())).Logger()
			// log request and response
			logger.Info().
				Str("method", request.Method).
				Stringer("url", request.URL).
				Msg("Request")
			start := time.Now()
			wrappedWriter := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
			defer func(start time.Time, wrappedWriter middleware.WrapResponseWriter) {
				duration := time.Since(start)
				logger.Info().
					Int("status", wrappedWriter.Status()).
					Int("bytes", wrappedWriter.BytesWritten()).
					Dur("duration", duration).
					Msg("Response")
			}(start, wrappedWriter)
			// recover any panic
			defer func() {
				recovered := exception.Recover(recover())
				if recovered == nil {
					return
				}
				if recovered.GetRecovered() == http.ErrAbortHandler {
					panic(http.ErrAbortHandler)
				}
				renderer.Log(&logger, zerolog.ErrorLevel, recovered, "Recovered from panic")
				// response with 500 Internal Server Error
				if request.Header.Get("Connection") != "Upgrade" {
					response := ServerErrorResponse{Status: http.StatusInternalServerError, Cause: errorInternal}
					if err := response.Render(wrappedWriter); err != nil {
						logger.Error().Err(err).Msg("Failed to render error")
					}
				}
			}()
			// call the next handler
			next.ServeHTTP(wrappedWriter, request.WithContext(logger.WithContext(request.Context())))
		})
	}
}
