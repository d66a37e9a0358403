package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailCount records how often one email appeared within a submitted batch.
type EmailCount struct {
	Email string `json:"email"`
	Count int    `json:"count"`
}

// UploadReport summarizes the outcome of one contact import: how many rows
// were processed, which were new, and which collided with records that
// already existed before the upload.
type UploadReport struct {
	ID          uuid.UUID    `json:"id"`
	ActorID     string       `json:"actor_id"`
	ActorName   string       `json:"actor_name"`
	Filename    string       `json:"filename"`
	Processed   int          `json:"processed"`
	Inserted    int          `json:"inserted"`
	Updated     int          `json:"updated"`
	DupInFile   []EmailCount `json:"duplicates_in_file"`
	DupExisting []string     `json:"duplicates_existing"`
	CreatedAt   time.Time    `json:"created_at"`
}
