package domain

// Report is a generic tabular query result for the read-only statistics
// endpoints: column names plus rows of values. SQL NULLs come through as
// nil so they serialise as JSON null.
type Report struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}
