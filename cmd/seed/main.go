// Seeds the database: schema, a demo member and a starter 90-day plan.
// Run once against a fresh database; reruns skip rows that already exist.
package main

import (
	"flag"
	"log"
	"time"

	"ascend/internal/config"
	"ascend/internal/logger"
	"ascend/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&model.Member{}, &model.TrackerEntry{}, &model.Plan{}, &model.PlanTask{}, &model.Post{}); err != nil {
		log.Fatal("migrate failed:", err)
	}
	logger.Info("schema migrated")

	member, err := seedMember(db)
	if err != nil {
		log.Fatal("seed member failed:", err)
	}

	if err := seedPlan(db, member.ID); err != nil {
		log.Fatal("seed plan failed:", err)
	}

	logger.Info("=== all done ===")
}

func seedMember(db *gorm.DB) (*model.Member, error) {
	var existing model.Member
	if err := db.Where("username = ?", "demo").First(&existing).Error; err == nil {
		logger.Info("seed: demo member already exists", "id", existing.ID)
		return &existing, nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	m := model.Member{Username: "demo", Password: string(hash), Name: "Demo Member", Role: "member"}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	logger.Info("seed: demo member created", "id", m.ID)
	return &m, nil
}

func seedPlan(db *gorm.DB, memberID int) error {
	var count int64
	db.Model(&model.Plan{}).Where("member_id = ?", memberID).Count(&count)
	if count > 0 {
		logger.Info("seed: plan already exists")
		return nil
	}

	now := time.Now()
	plan := model.Plan{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		Title:       "90-Day Foundation",
		Description: "Daily work across body, mind and discipline.",
		Duration:    90,
		Pillars:     `["body","mind","discipline"]`,
		Objectives:  `["build-consistency","morning-routine","strength-base"]`,
		Status:      "active",
		StartDate:   now.Format("2006-01-02"),
		EndDate:     now.AddDate(0, 0, 90).Format("2006-01-02"),
	}

	starter := []struct {
		title    string
		taskType string
		duration int
	}{
		{"Morning workout", model.TypeWorkout, 45},
		{"Read 20 pages", model.TypeReading, 30},
		{"Evening journal", model.TypeJournal, 10},
	}
	for day := 0; day < plan.Duration; day++ {
		date := now.AddDate(0, 0, day).Format("2006-01-02")
		for _, t := range starter {
			plan.Tasks = append(plan.Tasks, model.PlanTask{
				ID:       uuid.NewString(),
				PlanID:   plan.ID,
				Title:    t.title,
				Type:     t.taskType,
				Duration: t.duration,
				TaskDate: date,
			})
		}
	}

	if err := db.Create(&plan).Error; err != nil {
		return err
	}
	logger.Info("seed: starter plan created", "id", plan.ID, "tasks", len(plan.Tasks))
	return nil
}
