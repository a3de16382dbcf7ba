package models

// FCRResult is the output of the first call resolution pipeline.
type FCRResult struct {
	// FCR is (closed - escalated - child) / total. It may be negative when over-escalated.
	FCR float64 `json:"fcr"`
	// ClosedCaseCount is the number of deduplicated cases not coming from the re-opened export.
	ClosedCaseCount int `json:"closed_case_count"`
	// EscalatedCaseCount is the number of closed cases that were escalated.
	EscalatedCaseCount int `json:"escalated_case_count"`
	// ChildCaseCount is the subtotal sum from the parent cases report, or the override.
	ChildCaseCount int `json:"child_case_count"`
	// TotalCases is the denominator used for FCR.
	TotalCases int `json:"total_cases"`
	// Denominator names the denominator mode (distinct or category-sum).
	Denominator string `json:"denominator"`
}
