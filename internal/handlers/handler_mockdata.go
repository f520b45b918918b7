package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/middleware"
	"github.com/kyukyubank/banking-service/pkg/config"
)

// mockDataHandler exposes the synthetic bulk-data generator on the internal
// API surface. Runs are heavyweight, so the endpoint is rate limited.
type mockDataHandler struct {
	mockDataService portssvc.MockDataSvcFacade
}

// registerMockDataRoutes registers the internal mock-data route.
func registerMockDataRoutes(rg *gin.RouterGroup, cfg *config.Config, ms portssvc.MockDataSvcFacade) {
	h := &mockDataHandler{mockDataService: ms}

	rate, err := limiter.NewRateFromFormatted(cfg.MockDataRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("2-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	internal := rg.Group("/internal", middleware.RateLimit(ipLimiter))
	{
		internal.POST("/mock-data", h.generate)
	}
}

func (h *mockDataHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateMockDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Mock data generation requested", slog.Int64("totalCount", req.TotalCount))

	res, err := h.mockDataService.GenerateMockData(c.Request.Context(), req)
	if err != nil {
		logger.Error("Mock data generation failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
