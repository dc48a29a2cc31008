package cfbstats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headerJunk = regexp.MustCompile(`[^a-z0-9]+`)
var digitsOnly = regexp.MustCompile(`[^0-9]`)

// Leaderboard is one parsed leaderboard table: original headers plus one
// header->cell map per team row.
type Leaderboard struct {
	Headers []string
	Rows    []map[string]string
}

// normalizeHeader collapses a column header for fuzzy matching
func normalizeHeader(value string) string {
	return headerJunk.ReplaceAllString(strings.ToLower(value), "")
}

// ParseLeaderboard extracts the stats table from a leaderboard page. The
// page carries navigation tables too, so the header row is located by
// content (a Team column next to a rank column), not by position.
func ParseLeaderboard(doc *goquery.Document) (*Leaderboard, error) {
	var rows [][]string
	doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		for _, c := range cells {
			if c != "" {
				rows = append(rows, cells)
				break
			}
		}
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no table rows found")
	}

	headerIndex := -1
	for idx, row := range rows {
		hasTeam, hasRank := false, false
		for _, cell := range row {
			switch normalizeHeader(cell) {
			case "team":
				hasTeam = true
			case "rank", "rk":
				hasRank = true
			}
			if cell == "#" {
				hasRank = true
			}
		}
		if hasTeam && hasRank {
			headerIndex = idx
			break
		}
	}
	if headerIndex == -1 {
		for idx, row := range rows {
			for _, cell := range row {
				if strings.EqualFold(strings.TrimSpace(cell), "team") {
					headerIndex = idx
				}
			}
			if headerIndex != -1 {
				break
			}
		}
	}
	if headerIndex == -1 {
		return nil, fmt.Errorf("no leaderboard header row found")
	}

	headers := rows[headerIndex]
	board := &Leaderboard{Headers: headers}
	for _, row := range rows[headerIndex+1:] {
		if len(row) < 2 {
			continue
		}
		entry := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				entry[header] = row[i]
			} else {
				entry[header] = ""
			}
		}
		board.Rows = append(board.Rows, entry)
	}

	return board, nil
}

// FindColumn locates the header matching any candidate name, exact
// normalized match first, then substring.
func FindColumn(headers []string, candidates ...string) (string, bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for _, candidate := range candidates {
		target := normalizeHeader(candidate)
		for i, h := range normalized {
			if h == target {
				return headers[i], true
			}
		}
	}

	for i, h := range normalized {
		for _, candidate := range candidates {
			if strings.Contains(h, normalizeHeader(candidate)) {
				return headers[i], true
			}
		}
	}

	return "", false
}

// ParsePercent parses a leaderboard percentage cell ("71.43%", "71.43")
func ParsePercent(value string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseRank parses a rank cell, tolerating tie markers like "T3"
func ParseRank(value string) (int, bool) {
	cleaned := digitsOnly.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	rank, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return rank, true
}

// Ordinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th"
func Ordinal(value int) string {
	suffix := "th"
	if value%100 < 10 || value%100 > 20 {
		switch value % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", value, suffix)
}
