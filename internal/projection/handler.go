package projection

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/voltline/renewable-ts/internal/api/v1"
	httperr "github.com/voltline/renewable-ts/internal/core/errors"
)

// RegisterRoutes registers all query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/timeseries/v1")
	g.POST("/query", s.HandleQuery)
	g.GET("/query/history", s.HandleHistory)
}

// HandleQuery handles POST /timeseries/v1/query
func (s *Service) HandleQuery(c *gin.Context) {
	var req v1.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Aggregate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid aggregate query",
				Details:   err.Error(),
			})
			return
		}

		slog.Error("Aggregate query failed", "kind", req.AggregationKind.String(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.Internal())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleHistory handles GET /timeseries/v1/query/history
func (s *Service) HandleHistory(c *gin.Context) {
	entries, err := s.History(c.Request.Context())
	if err != nil {
		slog.Error("History query failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.Internal())
		return
	}

	c.JSON(http.StatusOK, entries)
}
