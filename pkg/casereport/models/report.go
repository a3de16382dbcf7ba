package models

import "time"

// CaseReportSummary describes a formatted case report workbook.
type CaseReportSummary struct {
	// BookName is the display name of the source file.
	BookName string `json:"book_name"`
	// SheetName is the formatted sheet.
	SheetName string `json:"sheet_name"`
	// RunAt is the report runtime stamped into the title row.
	RunAt time.Time `json:"run_at"`
	// Agents lists every agent group in pivot order.
	Agents []AgentAggregate `json:"agents"`
}
