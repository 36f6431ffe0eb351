package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	v1 "finsight/internal/api/v1"
	"finsight/internal/config"
	"finsight/internal/store"
)

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
	log    zerolog.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log zerolog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if _, err := config.EnsureDataDir(cfg); err != nil {
		return nil, err
	}

	sqliteStore, err := store.New(config.DBPath(cfg))
	if err != nil {
		return nil, err
	}

	handler, err := v1.NewHandler(sqliteStore, cfg, log)
	if err != nil {
		sqliteStore.Close()
		return nil, err
	}

	s := &Server{
		router: gin.New(),
		store:  sqliteStore,
		v1:     handler,
		log:    log,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// requestLogger 结构化请求日志
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
