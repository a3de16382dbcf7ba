// Package models defines data structures for report interpretation.
package models

import "time"

// CaseRecord is one case row extracted from a flat case-list export.
type CaseRecord struct {
	// DateTime is the value of the report date column (edit date or opened date).
	DateTime time.Time `json:"datetime"`
	// CaseNumber is the canonical case number; numeric values are rendered as integers.
	CaseNumber string `json:"case_number"`
	// CaseOwner is the agent owning the case.
	CaseOwner string `json:"case_owner"`
	// Status is the free-text case status.
	Status string `json:"status"`
	// IsOpen is the truthiness of the "Open" column.
	IsOpen bool `json:"is_open"`
	// IsClosed is the truthiness of the "Closed" column.
	IsClosed bool `json:"is_closed"`
	// WasEscalated is the truthiness of the "Was Escalated" column.
	WasEscalated bool `json:"was_escalated"`
	// IsReopened marks records that came from the re-opened export.
	IsReopened bool `json:"is_reopened"`
}
