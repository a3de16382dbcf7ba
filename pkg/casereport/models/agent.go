package models

// AgentAggregate summarizes one agent group of the case report pivot table.
type AgentAggregate struct {
	// AgentName is the label of the group header row.
	AgentName string `json:"agent_name"`
	// RowCount is the number of detail rows in the group. Always positive.
	RowCount int `json:"row_count"`
	// AverageCycles is the mean weight value, rounded half-even to 2 decimals.
	AverageCycles float64 `json:"average_cycles"`
	// Band is the threshold level name selected by the colorizer.
	Band string `json:"band,omitempty"`
	// Color is the applied fill color in aRGB form.
	Color string `json:"color,omitempty"`
	// AverageCell is the coordinate of the written AVERAGE formula.
	AverageCell string `json:"average_cell,omitempty"`
}
