package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/newsmesh/cognition/internal/core"
	"github.com/newsmesh/cognition/internal/core/model"
	"github.com/newsmesh/cognition/internal/logging"
)

// Server exposes the pipeline over HTTP for ad-hoc analysis alongside the
// feed-driven daemon.
type Server struct {
	pipeline *core.Pipeline
	log      *logrus.Entry
}

func NewServer(pipeline *core.Pipeline) *Server {
	return &Server{
		pipeline: pipeline,
		log:      logging.New("http-server"),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/analyze", s.Analyze)
	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Analyze runs one document through the pipeline synchronously and returns
// its structured result.
func (s *Server) Analyze(c *gin.Context) {
	var article model.RawArticle
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if article.ArticleID == "" || article.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id and content are required"})
		return
	}

	result, err := s.pipeline.Process(c.Request.Context(), article)
	if err != nil {
		s.log.WithError(err).WithField("article_id", article.ArticleID).Error("Failed to process article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process article"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
