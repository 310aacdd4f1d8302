package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ascend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanService struct{ db *gorm.DB }

func NewPlanService(db *gorm.DB) *PlanService { return &PlanService{db: db} }

// CreatePlan starts a new program for the member: endDate = startDate +
// duration days, progress 0, status active. Nothing prevents a second active
// plan; CurrentPlan's ordering decides which one wins.
func (s *PlanService) CreatePlan(ctx context.Context, memberID int, req model.CreatePlanRequest) (*model.Plan, error) {
	now := time.Now()
	pillars, _ := json.Marshal(req.Pillars)
	objectives, _ := json.Marshal(req.Objectives)

	plan := model.Plan{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Pillars:     string(pillars),
		Objectives:  string(objectives),
		Status:      "active",
		StartDate:   now.Format(dateLayout),
		EndDate:     now.AddDate(0, 0, req.Duration).Format(dateLayout),
		Progress:    0,
	}
	for _, t := range req.Tasks {
		plan.Tasks = append(plan.Tasks, model.PlanTask{
			ID:          uuid.NewString(),
			PlanID:      plan.ID,
			Title:       t.Title,
			Description: t.Description,
			Type:        t.Type,
			Duration:    t.Duration,
			TaskDate:    t.Date,
		})
	}

	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return &plan, nil
}

func (s *PlanService) LoadPlans(ctx context.Context, memberID int) ([]model.Plan, error) {
	var plans []model.Plan
	err := s.db.WithContext(ctx).
		Preload("Tasks").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	return plans, nil
}

// CurrentPlan returns the first active plan in createdAt-descending order, or
// nil when the member has none. With several active plans the most recently
// created one wins; single-active is a convention, not a constraint.
func (s *PlanService) CurrentPlan(ctx context.Context, memberID int) (*model.Plan, error) {
	plans, err := s.LoadPlans(ctx, memberID)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].Status == "active" {
			return &plans[i], nil
		}
	}
	return nil, nil
}

// UpdateProgress overwrites the stored progress as given. No clamping to
// [0,100]; callers own the range.
func (s *PlanService) UpdateProgress(ctx context.Context, planID string, progress float64) error {
	tx := s.db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", planID).Update("progress", progress)
	if tx.Error != nil {
		return fmt.Errorf("update progress: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PlanService) UpdateStatus(ctx context.Context, planID, status string) error {
	tx := s.db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", planID).Update("status", status)
	if tx.Error != nil {
		return fmt.Errorf("update status: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PlanService) SetTaskCompleted(ctx context.Context, taskID string, completed bool) error {
	tx := s.db.WithContext(ctx).Model(&model.PlanTask{}).Where("id = ?", taskID).Update("completed", completed)
	if tx.Error != nil {
		return fmt.Errorf("update task: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PlanService) TasksForDate(ctx context.Context, planID, date string) ([]model.PlanTask, error) {
	var tasks []model.PlanTask
	err := s.db.WithContext(ctx).
		Where("plan_id = ? AND task_date = ?", planID, date).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// CompletedRatio recomputes overall progress from task state. Handlers feed
// the result to UpdateProgress; the repository itself never clamps or derives.
func CompletedRatio(tasks []model.PlanTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}
