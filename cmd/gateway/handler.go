package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/inventory-agent/internal/agent"
	"github.com/dileep-u-k/inventory-agent/internal/api"
	"github.com/dileep-u-k/inventory-agent/internal/cache"
	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
	"github.com/dileep-u-k/inventory-agent/internal/pricing"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
	"github.com/dileep-u-k/inventory-agent/internal/version"
)

// GatewayHandler serves the pricing core, the catalog and the agent over HTTP.
type GatewayHandler struct {
	store  catalog.Store
	agent  *agent.Agent
	cache  cache.Cache
	health *healthMonitor
	logger logging.Logger
}

// NewGatewayHandler creates the handler. A nil agent disables /chat and a nil
// health monitor reports the LLM as unconfigured.
func NewGatewayHandler(store catalog.Store, ag *agent.Agent, c cache.Cache, health *healthMonitor, logger logging.Logger) *GatewayHandler {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &GatewayHandler{store: store, agent: ag, cache: c, health: health, logger: logger}
}

// newRouter registers every route on a new engine.
func newRouter(h *GatewayHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(h.logger))

	engine.GET("/healthz", h.HandleHealth)
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/convert", h.HandleConvert)
		v1.POST("/decompose", h.HandleDecompose)
		v1.POST("/quote", h.HandleQuote)
		v1.GET("/products", h.HandleProducts)
		v1.GET("/menu", h.HandleMenu)
		v1.GET("/summary", h.HandleSummary)
		v1.GET("/analysis", h.HandleAnalysis)
		v1.GET("/forecast", h.HandleForecast)
		v1.POST("/chat", h.HandleChat)
	}
	return engine
}

func (h *GatewayHandler) HandleHealth(c *gin.Context) {
	llmStatus := statusUnconfigured
	if h.health != nil {
		llmStatus = h.health.Status()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.GetBuildInfo().Version,
		"llm":     llmStatus,
	})
}

func (h *GatewayHandler) HandleConvert(c *gin.Context) {
	var req api.ConvertRequest
	if !bindJSON(c, &req) {
		return
	}
	from, err := pricing.ParseUnit(req.FromUnit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	to, err := pricing.ParseUnit(req.ToUnit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	result, err := tools.ConvertQuantity(*req.Quantity, from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GatewayHandler) HandleDecompose(c *gin.Context) {
	var req api.DecomposeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, pricing.Decompose(*req.Grams))
}

func (h *GatewayHandler) HandleQuote(c *gin.Context) {
	var req api.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := pricing.ParseUnit(req.Unit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	key := version.GenerateVersionedCacheKey("quote",
		strconv.FormatFloat(req.BasePrice, 'g', -1, 64)+"|"+strconv.FormatFloat(req.Quantity, 'g', -1, 64)+"|"+string(unit))

	var quote pricing.Quote
	if h.cache.Get(ctx, key, &quote) {
		c.JSON(http.StatusOK, api.QuoteResponse{Quote: quote, CacheStatus: cache.StatusHit})
		return
	}

	quote, err = pricing.PriceBulk(req.BasePrice, req.Quantity, unit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cache.Set(ctx, key, quote)
	c.JSON(http.StatusOK, api.QuoteResponse{Quote: quote, CacheStatus: h.cache.Status()})
}

// listProducts applies the optional tier and sort_by query parameters.
func (h *GatewayHandler) listProducts(c *gin.Context) ([]catalog.Product, catalog.SortKey, bool) {
	sortBy, err := catalog.ParseSortKey(c.Query("sort_by"))
	if err != nil {
		badRequest(c, err)
		return nil, "", false
	}
	products, ok := h.listTier(c)
	return products, sortBy, ok
}

// listTier applies the optional tier query parameter.
func (h *GatewayHandler) listTier(c *gin.Context) ([]catalog.Product, bool) {
	var tier catalog.QualityTier
	if raw := c.Query("tier"); raw != "" {
		var err error
		if tier, err = catalog.ParseQualityTier(raw); err != nil {
			badRequest(c, err)
			return nil, false
		}
	}
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return catalog.FilterByTier(products, tier), true
}

func (h *GatewayHandler) HandleProducts(c *gin.Context) {
	products, sortBy, ok := h.listProducts(c)
	if !ok {
		return
	}
	sorted := catalog.SortForMenu(products, sortBy)
	if sorted == nil {
		sorted = []catalog.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": sorted})
}

func (h *GatewayHandler) HandleMenu(c *gin.Context) {
	products, sortBy, ok := h.listProducts(c)
	if !ok {
		return
	}
	menu, err := catalog.RenderMenu(products, sortBy)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

func (h *GatewayHandler) HandleSummary(c *gin.Context) {
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	summary, err := catalog.Summarize(products)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *GatewayHandler) HandleAnalysis(c *gin.Context) {
	products, ok := h.listTier(c)
	if !ok {
		return
	}
	stats, err := catalog.TierStats(products)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": stats})
}

type forecastQuery struct {
	Days          int     `form:"days" binding:"required,min=1,max=365"`
	GrowthPercent float64 `form:"growth_percent" binding:"gte=-100,lte=1000"`
}

func (h *GatewayHandler) HandleForecast(c *gin.Context) {
	var q forecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	forecast, err := catalog.ForecastSales(products, q.Days, q.GrowthPercent)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *GatewayHandler) HandleChat(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "no LLM provider is configured"})
		return
	}
	start := time.Now()
	var req api.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	payload, err := json.Marshal(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	key := version.GenerateVersionedCacheKey("chat:"+h.agent.Model(), string(payload))

	var resp api.ChatResponse
	if h.cache.Get(ctx, key, &resp) {
		h.logger.Infof("chat cache HIT")
		resp.RequestID = requestIDOr(c, resp.RequestID)
		resp.CacheStatus = cache.StatusHit
		resp.LatencyMS = time.Since(start).Milliseconds()
		c.JSON(http.StatusOK, resp)
		return
	}

	result, err := h.agent.Run(ctx, req.Prompt, agent.HistoryFromAPI(req.History))
	if err != nil {
		h.logger.Errorf("agent run failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp = api.ChatResponse{
		RequestID:   requestIDOr(c, result.RequestID),
		Content:     result.Content,
		ModelUsed:   result.Model,
		Usage:       result.Usage,
		ToolsCalled: result.ToolsCalled,
		LatencyMS:   time.Since(start).Milliseconds(),
		CacheStatus: h.cache.Status(),
	}
	h.cache.Set(ctx, key, resp)
	c.JSON(http.StatusOK, resp)
}

// requestIDOr returns the ID requestLogger assigned, or fallback when the
// handler runs without it.
func requestIDOr(c *gin.Context, fallback string) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return fallback
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request: " + err.Error()})
}

// writeError maps domain errors to status codes.
func (h *GatewayHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pricing.ErrInvalidUnit),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidQuantity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrProductNotFound):
		status = http.StatusNotFound
	default:
		h.logger.Errorf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
