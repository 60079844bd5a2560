package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/resinfo/internal/domain/status"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// StatusAggregator builds the status document for a request.
type StatusAggregator interface {
	Execute(ctx context.Context, q status.Query) *status.Document
}

// StatusHandler serves the aggregate status document.
type StatusHandler struct {
	aggregator StatusAggregator
	logger     logger.Interface
}

func NewStatusHandler(aggregator StatusAggregator, logger logger.Interface) *StatusHandler {
	return &StatusHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// GetStatus handles GET /api.php and GET /api/status. Failures are reported
// inside the document; the response is always 200.
// @Summary Get router status
// @Description Aggregate the selected topics into one document. Every topic is present; unselected ones report "no data".
// @Tags Status
// @Produce json
// @Param network query string false "Network selector (device, getCPUInfo, getTempInfo, getStorage, or an interface name)"
// @Param system query string false "ubus system method (info, board)"
// @Param luci query string false "LuCI method (getCPUUsage, getCPUInfo, getTunnelStatus)"
// @Param vnstat query string false "Interface for vnstat traffic history"
// @Param users query string false "Users action (online)"
// @Param connection query string false "Connection selector (status)"
// @Param publicip query string false "Public IP selector (info)"
// @Param ping query string false "Ping selector (time)"
// @Param host query string false "Ping target host" default(google.com)
// @Param services query string false "Services selector (running)"
// @Param logs query string false "Log selector (system)"
// @Param lines query int false "Number of log lines" default(50)
// @Param netdata query string false "Netdata chart or info selector"
// @Param data query string false "Netdata data mode (all)"
// @Success 200 {object} map[string]status.Envelope
// @Router /api/status [get]
// @Router /api.php [get]
func (h *StatusHandler) GetStatus(c *gin.Context) {
	q := status.NewQuery(c.Request.URL.Query())
	doc := h.aggregator.Execute(c.Request.Context(), q)

	body, err := json.Marshal(doc)
	if err != nil {
		h.logger.Errorw("failed to encode status document", "error", err)
		body, _ = json.Marshal(status.NewDocument())
	}

	c.Data(http.StatusOK, contentTypeJSON, body)
}

// Health handles GET /health.
// @Summary Health check
// @Tags Status
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
