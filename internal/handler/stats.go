package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/pharmacist-relay-go/internal/llm"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
)

// StatsResponse 는 모델 호출 통계 응답이다.
type StatsResponse struct {
	Calls map[string]float64 `json:"calls"`
	Usage llm.Usage          `json:"usage"`
}

// StatsHandler 는 프로세스 내 호출 통계를 노출한다.
type StatsHandler struct {
	metrics *metrics.Store
}

// NewStatsHandler 는 통계 핸들러를 생성한다.
func NewStatsHandler(metricsStore *metrics.Store) *StatsHandler {
	return &StatsHandler{metrics: metricsStore}
}

// RegisterRoutes 는 통계 라우트를 등록한다.
func (h *StatsHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/api/stats", h.handleStats)
}

func (h *StatsHandler) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{
		Calls: h.metrics.Snapshot(),
		Usage: h.metrics.UsageTotals(),
	})
}
