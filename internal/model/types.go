package model

import "time"

// Item represents a Wikidata item for one person.
type Item struct {
	QID         string
	Label       string
	Description string
	Gender      string
	FetchedAt   time.Time
}

// Sitelink represents a Wikipedia article linked from a Wikidata item.
// Project is the wiki database name, e.g. "enwiki".
type Sitelink struct {
	QID     string
	Project string
	Title   string
}

// Article represents a Wikipedia article found in a tracked non-binary
// category via PetScan.
type Article struct {
	QID       string
	Project   string
	Title     string
	FetchedAt time.Time
}

// CellStatus classifies one per-project cell of a comparison row.
type CellStatus int

const (
	// StatusMissing means no article exists on that project.
	StatusMissing CellStatus = iota
	// StatusWrong means the article or item exists but does not record a
	// non-binary gender. Any wrong cell flags the whole row as an error.
	StatusWrong
	// StatusNonBinary means the project agrees with the tracked category.
	StatusNonBinary
)

// Class returns the CSS class used for this status in the HTML report.
func (s CellStatus) Class() string {
	switch s {
	case StatusNonBinary:
		return "nonbinary"
	case StatusWrong:
		return "wrong"
	default:
		return "missing"
	}
}

// ComparisonCell is one cell of a comparison row: a project's view of the
// person's gender.
type ComparisonCell struct {
	Status CellStatus
	Text   string
	Link   string // empty when there is nothing to link to
}

// ComparisonRow is one person across every tracked Wikipedia plus Wikidata.
// Cells are ordered like the configured languages, with the Wikidata cell
// last. Error is set when any cell is StatusWrong.
type ComparisonRow struct {
	QID   string
	Name  string
	Cells []ComparisonCell
	Error bool
}
