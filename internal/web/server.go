package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Giterapeuta/app-emagrecimento/internal/services"
)

// Server expõe um endpoint HTTP de saúde e de estatísticas do painel.
type Server struct {
	stats  *services.StatsService
	router *gin.Engine
}

func NewServer(stats *services.StatsService) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	s := &Server{
		stats:  stats,
		router: router,
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/stats", s.handleStats)
	}

	return s
}

// Run inicia o servidor web.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	summary, err := s.stats.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
