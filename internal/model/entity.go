package model

import "time"

type Member struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Role      string    `gorm:"default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackerEntry is one logged activity for one member, one calendar day and one
// tracker type. Dates are stored as zero-padded YYYY-MM-DD strings so range
// queries and ordering work with plain string comparison. The date columns are
// plain varchar on purpose: a DATE column comes back from the driver as
// time.Time, not the stored string.
//
// There is intentionally no unique index on (member_id, type, entry_date): the
// one-entry-per-day rule is kept by TrackerService.UpsertValue's read-then-write
// sequence, which matches the original client behavior including its race (two
// in-flight upserts for the same key can produce two rows).
type TrackerEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID  int       `gorm:"index" json:"member_id"`
	Type      string    `gorm:"index;size:32" json:"type"`
	EntryDate string    `gorm:"size:10;index" json:"date"`
	Value     string    `gorm:"type:text" json:"value"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Plan struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	MemberID    int        `gorm:"index" json:"member_id"`
	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    int        `json:"duration"`
	Pillars     string     `gorm:"type:text" json:"pillars"`
	Objectives  string     `gorm:"type:text" json:"objectives"`
	Status      string     `gorm:"default:active;size:16" json:"status"`
	StartDate   string     `gorm:"size:10" json:"start_date"`
	EndDate     string     `gorm:"size:10" json:"end_date"`
	Progress    float64    `json:"progress"`
	Tasks       []PlanTask `gorm:"foreignKey:PlanID" json:"daily_tasks,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PlanTask struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	PlanID      string `gorm:"index;size:36" json:"plan_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"size:32" json:"type"`
	Duration    int    `json:"duration"`
	Completed   bool   `json:"completed"`
	TaskDate    string `gorm:"size:10;index" json:"date"`
}

type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID  int       `gorm:"index" json:"member_id"`
	Author    string    `json:"author"`
	Pillar    string    `gorm:"size:32" json:"pillar"`
	Content   string    `gorm:"type:text" json:"content"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (Member) TableName() string       { return "members" }
func (TrackerEntry) TableName() string { return "trackers" }
func (Plan) TableName() string         { return "plans" }
func (PlanTask) TableName() string     { return "plan_tasks" }
func (Post) TableName() string         { return "posts" }
