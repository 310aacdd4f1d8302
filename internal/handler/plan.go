package handler

import (
	"errors"
	"net/http"
	"time"

	"ascend/internal/logger"
	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct{ svc *service.PlanService }

func NewPlanHandler(svc *service.PlanService) *PlanHandler { return &PlanHandler{svc: svc} }

// POST /api/plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req model.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	plan, err := h.svc.CreatePlan(c.Request.Context(), uid, req)
	if err != nil {
		logger.Error("plans.create failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create plan failed"})
		return
	}
	logger.Info("plans.created", "uid", uid, "plan", plan.ID, "duration", plan.Duration)
	c.JSON(http.StatusOK, plan)
}

// GET /api/plans
func (h *PlanHandler) List(c *gin.Context) {
	uid := c.GetInt("user_id")
	plans, err := h.svc.LoadPlans(c.Request.Context(), uid)
	if err != nil {
		logger.Error("plans.list failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load plans failed"})
		return
	}
	if plans == nil {
		plans = []model.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GET /api/plans/current
func (h *PlanHandler) Current(c *gin.Context) {
	uid := c.GetInt("user_id")
	plan, err := h.svc.CurrentPlan(c.Request.Context(), uid)
	if err != nil {
		logger.Error("plans.current failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load plan failed"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, gin.H{"plan": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// PUT /api/plans/:id/progress
func (h *PlanHandler) UpdateProgress(c *gin.Context) {
	var req model.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.svc.UpdateProgress(c.Request.Context(), c.Param("id"), req.Progress); err != nil {
		h.planError(c, "plans.progress", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /api/plans/:id/status
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		h.planError(c, "plans.status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/plans/:id/tasks?date=YYYY-MM-DD
func (h *PlanHandler) Tasks(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	tasks, err := h.svc.TasksForDate(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		logger.Error("plans.tasks failed", "plan", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load tasks failed"})
		return
	}
	if tasks == nil {
		tasks = []model.PlanTask{}
	}
	c.JSON(http.StatusOK, tasks)
}

// PUT /api/plans/:id/tasks/:taskId  body: {"completed": true}
func (h *PlanHandler) ToggleTask(c *gin.Context) {
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ctx := c.Request.Context()
	if err := h.svc.SetTaskCompleted(ctx, c.Param("taskId"), req.Completed); err != nil {
		h.planError(c, "plans.task", err)
		return
	}

	// progress follows task state; the repository only stores what we hand it
	uid := c.GetInt("user_id")
	plans, err := h.svc.LoadPlans(ctx, uid)
	if err == nil {
		for _, p := range plans {
			if p.ID == c.Param("id") {
				if err := h.svc.UpdateProgress(ctx, p.ID, service.CompletedRatio(p.Tasks)); err != nil {
					logger.Warn("plans.progress recompute failed", "plan", p.ID, "err", err)
				}
				break
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *PlanHandler) planError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Error(op+" failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
}
