package dto

import "time"

// IncomeStatementParams defines the period bounds for an income statement.
// Both bounds are calendar days and both are inclusive.
type IncomeStatementParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}
