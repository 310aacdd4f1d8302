package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ascend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type TrackerService struct{ db *gorm.DB }

func NewTrackerService(db *gorm.DB) *TrackerService { return &TrackerService{db: db} }

// DateRange is an inclusive [Start, End] filter on the YYYY-MM-DD date column.
// Dates compare as strings, which is why they must stay zero-padded.
type DateRange struct {
	Start string
	End   string
}

func (s *TrackerService) LoadEntries(ctx context.Context, memberID int, rng *DateRange) ([]model.TrackerEntry, error) {
	q := s.db.WithContext(ctx).Where("member_id = ?", memberID)
	if rng != nil {
		q = q.Where("entry_date >= ? AND entry_date <= ?", rng.Start, rng.End)
	}
	var entries []model.TrackerEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}

func (s *TrackerService) Create(ctx context.Context, e *model.TrackerEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update merges patch over the stored entry and bumps updated_at. Duplicate
// (member, type, date) is not checked here; that is the upsert's job.
func (s *TrackerService) Update(ctx context.Context, id string, patch map[string]any) error {
	tx := s.db.WithContext(ctx).Model(&model.TrackerEntry{}).Where("id = ?", id).Updates(patch)
	if tx.Error != nil {
		return fmt.Errorf("update entry: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TrackerService) Remove(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TrackerEntry{})
	if tx.Error != nil {
		return fmt.Errorf("delete entry: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertValue writes value for (member, type, date), updating the existing row
// when one exists and creating one otherwise. The read and the write are two
// round trips with no lock or constraint between them: a second upsert racing
// the first can read stale state and insert a duplicate row, and the last
// write wins.
func (s *TrackerService) UpsertValue(ctx context.Context, memberID int, date, entryType string, value json.RawMessage) error {
	var existing model.TrackerEntry
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND type = ? AND entry_date = ?", memberID, entryType, date).
		Order("created_at").
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.Create(ctx, &model.TrackerEntry{
			MemberID:  memberID,
			Type:      entryType,
			EntryDate: date,
			Value:     string(value),
		})
	}
	if err != nil {
		return fmt.Errorf("lookup entry: %w", err)
	}
	return s.Update(ctx, existing.ID, map[string]any{"value": string(value)})
}
