package collate

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"enbyscan/internal/config"
	"enbyscan/internal/model"
)

// Display texts for cells that have no gender to show.
const (
	noArticleText   = "no article"
	wrongGenderText = "wrong gender?"
)

// Rows merges Wikidata items, their sitelinks and the per-wiki category
// membership into one comparison row per person. The merge is an outer join
// on QID: a person found only in a category still gets a row, with the
// Wikidata cell flagged wrong.
//
// Per-language cell rules:
//   - no sitelink and no category hit: missing ("no article")
//   - article exists but is not in the tracked category: wrong (error)
//   - article is in the category: nonbinary
//
// The Wikidata cell is wrong (error) when the item is absent or records no
// gender. Rows come back sorted by display name, then QID.
func Rows(items []model.Item, sitelinks []model.Sitelink, articles []model.Article, langs []config.Language) []model.ComparisonRow {
	itemByQID := make(map[string]model.Item, len(items))
	for _, it := range items {
		itemByQID[it.QID] = it
	}

	linkTitle := make(map[string]string, len(sitelinks)) // qid+project -> title
	for _, sl := range sitelinks {
		linkTitle[sl.QID+"\x00"+sl.Project] = sl.Title
	}

	inCategory := make(map[string]string, len(articles)) // qid+project -> title
	for _, a := range articles {
		inCategory[a.QID+"\x00"+a.Project] = a.Title
	}

	qids := make(map[string]bool, len(items))
	for _, it := range items {
		qids[it.QID] = true
	}
	for _, a := range articles {
		qids[a.QID] = true
	}

	rows := make([]model.ComparisonRow, 0, len(qids))
	for qid := range qids {
		item, hasItem := itemByQID[qid]

		row := model.ComparisonRow{QID: qid, Name: item.Label}

		for _, lang := range langs {
			key := qid + "\x00" + lang.Project()
			title := inCategory[key]
			fromCategory := title != ""
			if title == "" {
				title = linkTitle[key]
			}
			if row.Name == "" {
				row.Name = title
			}

			var cell model.ComparisonCell
			switch {
			case title == "":
				cell = model.ComparisonCell{Status: model.StatusMissing, Text: noArticleText}
			case !fromCategory:
				cell = model.ComparisonCell{Status: model.StatusWrong, Text: wrongGenderText, Link: articleURL(lang.Code, title)}
				row.Error = true
			default:
				cell = model.ComparisonCell{Status: model.StatusNonBinary, Text: "non-binary", Link: articleURL(lang.Code, title)}
			}
			row.Cells = append(row.Cells, cell)
		}

		wikidataCell := model.ComparisonCell{Link: itemURL(qid)}
		if !hasItem || item.Gender == "" {
			wikidataCell.Status = model.StatusWrong
			wikidataCell.Text = wrongGenderText
			row.Error = true
		} else {
			wikidataCell.Status = model.StatusNonBinary
			wikidataCell.Text = item.Gender
		}
		row.Cells = append(row.Cells, wikidataCell)

		if row.Name == "" {
			row.Name = qid
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].QID < rows[j].QID
	})
	return rows
}

func articleURL(lang, title string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, url.PathEscape(strings.ReplaceAll(title, " ", "_")))
}

func itemURL(qid string) string {
	return "https://www.wikidata.org/wiki/" + qid
}
