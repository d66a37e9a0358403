package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one append-only audit event recorded per API call.
type Activity struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   string         `json:"actor_id"`
	ActorName string         `json:"actor_name"`
	Action    string         `json:"action"`
	Method    string         `json:"method"`
	Route     string         `json:"route"`
	Status    int            `json:"status"`
	Meta      map[string]any `json:"meta"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	CreatedAt time.Time      `json:"created_at"`
}

// Actor identifies the authenticated caller attached to a request.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Actor roles.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
)
