package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ascend/internal/logger"
	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-gonic/gin"
)

type ToolsHandler struct{ ai *service.AIService }

func NewToolsHandler(ai *service.AIService) *ToolsHandler { return &ToolsHandler{ai: ai} }

type sseWriter struct {
	w http.Flusher
	f gin.ResponseWriter
}

func (s *sseWriter) event(name string, data interface{}) {
	j, _ := json.Marshal(data)
	fmt.Fprintf(s.f, "event: %s\ndata: %s\n\n", name, j)
	s.w.Flush()
}

func (s *sseWriter) token(t string) {
	s.event("token", map[string]string{"token": t})
}

func (s *sseWriter) done() {
	s.event("done", map[string]string{})
}

// POST /api/tools/stream/:tool. Tool is one of diet-plan, workout-plan,
// financial-audit, relationship-audit. Streams token/done SSE events.
func (h *ToolsHandler) Stream(c *gin.Context) {
	var req model.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !h.ai.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai tools unavailable"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	uid := c.GetInt("user_id")
	tool := c.Param("tool")
	sse := &sseWriter{w: c.Writer, f: c.Writer}
	logger.Info("tools.stream", "uid", uid, "tool", tool)

	var err error
	switch tool {
	case "diet-plan":
		_, err = h.ai.StreamDietPlan(ctx, req.Fields, sse.token)
	case "workout-plan":
		_, err = h.ai.StreamWorkoutPlan(ctx, req.Fields, sse.token)
	case "financial-audit":
		_, err = h.ai.StreamFinancialAudit(ctx, req.Fields, sse.token)
	case "relationship-audit":
		_, err = h.ai.StreamRelationshipAudit(ctx, req.Text, sse.token)
	default:
		sse.event("error", map[string]string{"error": "unknown tool"})
		sse.done()
		return
	}
	if err != nil {
		logger.Error("tools.stream failed", "tool", tool, "err", err)
		sse.token("Generation failed, please try again later.")
	}
	sse.done()
}

// POST /api/tools/reframe. Blocking; returns {distortion, reframe, action}.
func (h *ToolsHandler) Reframe(c *gin.Context) {
	var req model.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.ai.ReframeThought(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai tools unavailable"})
			return
		}
		logger.Error("tools.reframe failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reframe failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
