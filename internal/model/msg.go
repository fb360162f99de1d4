package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// ComparisonLoadedMsg is sent when the comparison rows are loaded from the
// local cache.
type ComparisonLoadedMsg struct {
	Rows []ComparisonRow
}

// Screen represents different app screens.
type Screen int

const (
	ScreenComparison Screen = iota
	ScreenDetail
)
