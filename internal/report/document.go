package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"enbyscan/internal/table"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Structural precondition failures. A report page must carry exactly one
// table with a tbody and the filter checkbox.
var (
	ErrNoTable    = errors.New("document has no <table> element")
	ErrNoCheckbox = errors.New("document has no #" + CheckboxID + " control")
)

// Document binds a parsed report page to a table.Controller. The controller
// owns sort and filter state; Sync pushes that state back into the markup.
type Document struct {
	root     *html.Node
	tbody    *html.Node
	checkbox *html.Node

	headerNodes []*html.Node
	rowNode     map[*table.Row]*html.Node

	tab  *table.Table
	ctrl *table.Controller
}

// ParseDocument parses an HTML report and locates its table and filter
// checkbox, failing fast with a clear diagnostic when either is missing.
// Header direction markers and row error/hidden classes are read into the
// controller's state; from then on the markup is derived output.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	tables := findAll(root, atom.Table)
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	if len(tables) > 1 {
		return nil, fmt.Errorf("document has %d <table> elements, expected exactly one", len(tables))
	}
	tableNode := tables[0]

	tbodies := findAll(tableNode, atom.Tbody)
	if len(tbodies) == 0 {
		return nil, fmt.Errorf("%w: table has no <tbody>", ErrNoTable)
	}
	tbody := tbodies[0]

	checkbox := findByID(root, CheckboxID)
	if checkbox == nil {
		return nil, ErrNoCheckbox
	}
	if checkbox.DataAtom != atom.Input {
		return nil, fmt.Errorf("%w: #%s is a <%s>, not an <input>", ErrNoCheckbox, CheckboxID, checkbox.Data)
	}

	doc := &Document{
		root:     root,
		tbody:    tbody,
		checkbox: checkbox,
		rowNode:  map[*table.Row]*html.Node{},
		tab:      &table.Table{},
	}

	for _, th := range findAll(tableNode, atom.Th) {
		doc.headerNodes = append(doc.headerNodes, th)
		dir := table.Unsorted
		switch {
		case hasClass(th, "sorted-asc"):
			dir = table.Ascending
		case hasClass(th, "sorted-desc"):
			dir = table.Descending
		}
		doc.tab.Headers = append(doc.tab.Headers, table.Header{
			Label:     textContent(th),
			Direction: dir,
		})
	}

	for _, tr := range findAll(tbody, atom.Tr) {
		row := &table.Row{
			Error:  hasClass(tr, "error"),
			Hidden: hasClass(tr, "hidden"),
		}
		for _, td := range findAll(tr, atom.Td) {
			row.Cells = append(row.Cells, textContent(td))
		}
		doc.tab.Rows = append(doc.tab.Rows, row)
		doc.rowNode[row] = tr
	}

	ctrl, err := table.NewController(doc.tab)
	if err != nil {
		return nil, err
	}
	ctrl.SetErrorsOnly(hasAttr(checkbox, "checked"))
	doc.ctrl = ctrl

	return doc, nil
}

// Controller returns the controller bound to the parsed table.
func (d *Document) Controller() *table.Controller {
	return d.ctrl
}

// Headers returns the parsed header labels, in column order.
func (d *Document) Headers() []string {
	labels := make([]string, len(d.tab.Headers))
	for i, h := range d.tab.Headers {
		labels[i] = h.Label
	}
	return labels
}

// Sync pushes controller state back into the markup: header sort markers,
// row order, row error/hidden classes, and the checkbox state.
func (d *Document) Sync() {
	for i, th := range d.headerNodes {
		removeClass(th, "sorted-asc")
		removeClass(th, "sorted-desc")
		if i < len(d.tab.Headers) {
			switch d.tab.Headers[i].Direction {
			case table.Ascending:
				addClass(th, "sorted-asc")
			case table.Descending:
				addClass(th, "sorted-desc")
			}
		}
	}

	// Rebuild the body in controller order. Moving the existing <tr> nodes
	// keeps row identity, including attributes the parser did not model.
	for child := d.tbody.FirstChild; child != nil; {
		next := child.NextSibling
		d.tbody.RemoveChild(child)
		child = next
	}
	for _, row := range d.tab.Rows {
		tr := d.rowNode[row]
		if tr == nil {
			continue
		}
		setClass(tr, "error", row.Error)
		setClass(tr, "hidden", row.Hidden)
		d.tbody.AppendChild(tr)
	}

	setAttr(d.checkbox, "checked", d.ctrl.ErrorsOnly())
}

// Write syncs controller state into the tree and serializes the document.
func (d *Document) Write(w io.Writer) error {
	d.Sync()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

// node helpers

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findByID(n *html.Node, id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && attrValue(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key string, present bool) {
	for i, a := range n.Attr {
		if a.Key == key {
			if !present {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return
		}
	}
	if present {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: key})
	}
}

func classes(n *html.Node) []string {
	return strings.Fields(attrValue(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	writeClasses(n, append(classes(n), class))
}

func removeClass(n *html.Node, class string) {
	if !hasClass(n, class) {
		return
	}
	var kept []string
	for _, c := range classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	writeClasses(n, kept)
}

func setClass(n *html.Node, class string, present bool) {
	if present {
		addClass(n, class)
	} else {
		removeClass(n, class)
	}
}

func writeClasses(n *html.Node, list []string) {
	val := strings.Join(list, " ")
	for i, a := range n.Attr {
		if a.Key == "class" {
			if val == "" {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			} else {
				n.Attr[i].Val = val
			}
			return
		}
	}
	if val != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: val})
	}
}
