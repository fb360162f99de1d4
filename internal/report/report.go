package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"enbyscan/internal/config"
	"enbyscan/internal/model"
)

// Page is everything the report template needs.
type Page struct {
	Languages []config.Language
	Rows      []model.ComparisonRow
	Generated time.Time
}

// CheckboxID is the identifier of the errors-only filter control. The parser
// requires it, so generated pages and re-sorted pages stay round-trippable.
const CheckboxID = "filterCheckbox"

// Render writes the standalone HTML comparison page. The page carries the
// full styling contract: sorted-asc/sorted-desc on headers, error and hidden
// on rows, nonbinary/missing/wrong on cells.
func Render(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Comparison Table</title>
<style>
    body {
        font-family: Arial, sans-serif;
        margin: 20px;
    }
    table {
        border-collapse: collapse;
        width: 100%;
        margin-top: 20px;
    }
    th, td {
        border: 1px solid #ddd;
        padding: 8px;
        text-align: left;
    }
    .nonbinary {
        background-color: lightgreen;
    }
    .missing {
        background-color: lightgrey;
    }
    .wrong {
        background-color: lightcoral;
    }
    .hidden {
        display: none;
    }
    th {
        cursor: pointer;
        background-color: #f9f9f9;
    }
    th.sorted-asc::after {
        content: " ▲";
    }
    th.sorted-desc::after {
        content: " ▼";
    }
    a {
        color: black;
        text-decoration: none;
    }
</style>
</head>
<body>
<h1>Comparison Table</h1>
<p>Non-binary people on Wikipedia and Wikidata</p>
<p>Green: Non-binary, Grey: No article, Red: Binary gender (likely Wrong?)</p>
<p>Generated {{.Generated.Format "2006-01-02 15:04"}}. Re-sort or filter offline with enbyscan resort.</p>
<label><input type="checkbox" id="filterCheckbox"> Show only potential errors</label>
<table>
<thead>
<tr>
<th>Title</th>
{{range .Languages}}<th>{{.Name}} Wikipedia</th>
{{end}}<th>Wikidata</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr{{if .Error}} class="error"{{end}}><td>{{.Name}}</td>{{range .Cells}}<td class="{{.Status.Class}}">{{if .Link}}<a href="{{.Link}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))
