package model

import "encoding/json"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

type CreateEntryRequest struct {
	Type     string          `json:"type" binding:"required"`
	Date     string          `json:"date" binding:"required"`
	Value    json.RawMessage `json:"value" binding:"required"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type UpdateEntryRequest struct {
	Value    json.RawMessage `json:"value,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type UpsertEntryRequest struct {
	Type  string          `json:"type" binding:"required"`
	Date  string          `json:"date" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

type StreakResponse struct {
	Type        string  `json:"type"`
	Streak      int     `json:"streak"`
	Consistency float64 `json:"consistency"`
}

type CreatePlanRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Duration    int            `json:"duration" binding:"required"`
	Pillars     []string       `json:"pillars"`
	Objectives  []string       `json:"objectives"`
	Tasks       []PlanTaskSpec `json:"daily_tasks"`
}

type PlanTaskSpec struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type UpdateProgressRequest struct {
	Progress float64 `json:"progress"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed paused"`
}

type CreatePostRequest struct {
	Pillar  string `json:"pillar"`
	Content string `json:"content" binding:"required"`
}

// ToolRequest carries the user-side payload for an AI content tool. Fields is
// free-form (goals, restrictions, budget figures...) and is rendered into the
// prompt; the tool name comes from the route.
type ToolRequest struct {
	Fields map[string]string `json:"fields"`
	Text   string            `json:"text"`
}

type ReframeResponse struct {
	Distortion string `json:"distortion"`
	Reframe    string `json:"reframe"`
	Action     string `json:"action"`
}
