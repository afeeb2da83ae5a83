// Package ingest parses ledger export files into ledger rows and persists
// them as named reports.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

// Recognized header names, lowercased. Exports from different systems name
// the same columns differently.
var columnAliases = map[string]string{
	"account_code":         "code",
	"code":                 "code",
	"codigo":               "code",
	"label":                "label",
	"description":          "label",
	"concepto":             "label",
	"amount":               "amount",
	"monto":                "amount",
	"type":                 "type",
	"tipo":                 "type",
	"category":             "category",
	"categoria_1":          "category",
	"sub_category":         "sub_category",
	"sub_categoria":        "sub_category",
	"final_classification": "final",
	"clasificacion_final":  "final",
}

// SkippedLine describes an export line that was excluded from the result.
type SkippedLine struct {
	Line   int
	Reason string
}

// Result carries the parsed rows plus the lines that were excluded.
// Malformed account codes exclude a line; they never fail the whole parse.
type Result struct {
	Rows    []model.LedgerRow
	Skipped []SkippedLine
}

// Parser converts a ledger export CSV into ledger rows.
type Parser struct {
	sentinels hierarchy.Sentinels
}

// NewParser creates a parser that fills absent classification columns with
// the given sentinel values.
func NewParser(sentinels hierarchy.Sentinels) *Parser {
	defaults := hierarchy.DefaultSentinels()
	if sentinels.Type == "" {
		sentinels.Type = defaults.Type
	}
	if sentinels.Category == "" {
		sentinels.Category = defaults.Category
	}
	if sentinels.Final == "" {
		sentinels.Final = defaults.Final
	}
	return &Parser{sentinels: sentinels}
}

// Parse reads a ledger export. The first record must be a header row with
// at least code and label columns.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger CSV is empty")
	}

	columns, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, rec := range records[1:] {
		line := i + 2
		row, reason := p.parseRecord(rec, columns)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedLine{Line: line, Reason: reason})
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			columns[canonical] = i
		}
	}

	if _, ok := columns["code"]; !ok {
		return nil, fmt.Errorf("ledger CSV has no account code column")
	}
	if _, ok := columns["label"]; !ok {
		return nil, fmt.Errorf("ledger CSV has no label column")
	}
	return columns, nil
}

func (p *Parser) parseRecord(rec []string, columns map[string]int) (model.LedgerRow, string) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	rawCode := field("code")
	if rawCode == "" {
		return model.LedgerRow{}, "missing account code"
	}
	if _, err := hierarchy.ParseCode(rawCode); err != nil {
		return model.LedgerRow{}, fmt.Sprintf("malformed account code %q", rawCode)
	}

	label := field("label")
	if label == "" {
		return model.LedgerRow{}, "missing label"
	}

	// Missing amounts are zero, not an error.
	amount := decimal.Zero
	if raw := field("amount"); raw != "" {
		parsed, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return model.LedgerRow{}, fmt.Sprintf("unparseable amount %q", raw)
		}
		amount = parsed
	}

	c := model.Classification{
		Type:        field("type"),
		Category:    field("category"),
		SubCategory: field("sub_category"),
		Final:       field("final"),
	}
	if c.Type == "" {
		c.Type = p.sentinels.Type
	}
	if c.Category == "" {
		c.Category = p.sentinels.Category
	}
	if c.Final == "" {
		c.Final = p.sentinels.Final
	}

	return model.LedgerRow{
		AccountCode:    rawCode,
		Label:          label,
		Amount:         amount,
		Classification: c,
	}, ""
}
