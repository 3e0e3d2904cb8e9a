package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginlib "github.com/gin-gonic/gin"

	"github.com/MamaFati/farmDirect/internal/config"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

type Server struct {
	srv *http.Server
	log logger.Logger
}

// NewEngine returns a gin engine with request ids, access logging and panic
// recovery installed. Release mode is used outside local/development.
func NewEngine(env string, log logger.Logger) *ginlib.Engine {
	if env != "local" && env != "development" {
		ginlib.SetMode(ginlib.ReleaseMode)
	}
	r := ginlib.New()
	r.Use(RequestID(), AccessLog(log), Recovery(log))
	return r
}

func NewServer(cfg config.ServerConfig, engine *ginlib.Engine, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Run() error {
	if s.srv.Handler == nil {
		return fmt.Errorf("gin engine is nil")
	}
	s.log.Info("http server listening", logger.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
