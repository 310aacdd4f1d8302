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

type TrackerHandler struct{ svc *service.TrackerService }

func NewTrackerHandler(svc *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{svc: svc}
}

// GET /api/trackers?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *TrackerHandler) List(c *gin.Context) {
	uid := c.GetInt("user_id")

	var rng *service.DateRange
	if start, end := c.Query("start"), c.Query("end"); start != "" && end != "" {
		rng = &service.DateRange{Start: start, End: end}
	}

	entries, err := h.svc.LoadEntries(c.Request.Context(), uid, rng)
	if err != nil {
		logger.Error("trackers.list failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load entries failed"})
		return
	}
	if entries == nil {
		entries = []model.TrackerEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// POST /api/trackers
func (h *TrackerHandler) Create(c *gin.Context) {
	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	entry := model.TrackerEntry{
		MemberID:  uid,
		Type:      req.Type,
		EntryDate: req.Date,
		Value:     string(req.Value),
		Metadata:  string(req.Metadata),
	}
	if err := h.svc.Create(c.Request.Context(), &entry); err != nil {
		logger.Error("trackers.create failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create entry failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// PUT /api/trackers/:id
func (h *TrackerHandler) Update(c *gin.Context) {
	var req model.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := map[string]any{}
	if req.Value != nil {
		patch["value"] = string(req.Value)
	}
	if req.Metadata != nil {
		patch["metadata"] = string(req.Metadata)
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty patch"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		logger.Error("trackers.update failed", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update entry failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/trackers/:id
func (h *TrackerHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		logger.Error("trackers.delete failed", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete entry failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/trackers/upsert
func (h *TrackerHandler) Upsert(c *gin.Context) {
	var req model.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	// Unknown types are stored as-is; the warning is for spotting client typos.
	if !model.IsTrackerType(req.Type) {
		logger.Warn("trackers.upsert unknown type", "uid", uid, "type", req.Type)
	}
	logger.Info("trackers.upsert", "uid", uid, "type", req.Type, "date", req.Date)
	if err := h.svc.UpsertValue(c.Request.Context(), uid, req.Date, req.Type, req.Value); err != nil {
		logger.Error("trackers.upsert failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upsert failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/trackers/streak/:type
func (h *TrackerHandler) Streak(c *gin.Context) {
	uid := c.GetInt("user_id")
	entryType := c.Param("type")

	resp, err := h.svc.StreakFor(c.Request.Context(), uid, entryType)
	if err != nil {
		logger.Error("trackers.streak failed", "uid", uid, "type", entryType, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streak failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/trackers/summary/:type feeds a pillar page: today's entry (decoded),
// the trailing week of entries, and the streak numbers in one round trip.
func (h *TrackerHandler) Summary(c *gin.Context) {
	uid := c.GetInt("user_id")
	entryType := c.Param("type")
	ctx := c.Request.Context()

	now := time.Now()
	end := now.Format("2006-01-02")
	start := now.AddDate(0, 0, -6).Format("2006-01-02")

	// The streak walks back as far as the run reaches, so it needs the full
	// history; only the week slice is window-bound.
	entries, err := h.svc.LoadEntries(ctx, uid, nil)
	if err != nil {
		logger.Error("trackers.summary failed", "uid", uid, "type", entryType, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load entries failed"})
		return
	}

	week := make([]model.TrackerEntry, 0, len(entries))
	var today *model.TrackerEntry
	todayCompleted := false
	for i := range entries {
		if entries[i].Type != entryType {
			continue
		}
		if entries[i].EntryDate >= start && entries[i].EntryDate <= end {
			week = append(week, entries[i])
		}
		if entries[i].EntryDate == end {
			today = &entries[i]
			if v, err := model.DecodeValue(entryType, []byte(entries[i].Value)); err == nil {
				todayCompleted = v.Completed
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"type":            entryType,
		"today":           today,
		"today_completed": todayCompleted,
		"week":            week,
		"streak":          service.Streak(entries, entryType, now),
		"consistency":     service.Consistency(week, entryType, 7, now),
	})
}
