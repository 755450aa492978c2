package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"supsindex-navigator/internal/domain"
	affiliationrepo "supsindex-navigator/internal/repository/affiliation"
)

type AffiliationWriter interface {
	Upsert(ctx context.Context, in affiliationrepo.UpsertInput) (*domain.AffiliationCode, error)
}

// CSVImporter reads partner-exported affiliation code CSVs and upserts them.
// Expected header: user_id, code, requested_tests, discounts. Multi-valued
// cells use `|` between entries and `:` between code and amount.
type CSVImporter struct {
	reader *csv.Reader
	repo   AffiliationWriter
}

func NewCSVImporter(r io.Reader, repo AffiliationWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo}
}

// Run parses CSV rows and upserts affiliation codes, returning the count.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(headers))
	for pos, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = pos
	}
	for _, required := range []string{"user_id", "code", "requested_tests"} {
		if _, ok := idx[required]; !ok {
			return 0, fmt.Errorf("missing column %q", required)
		}
	}

	count := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row: %w", err)
		}
		in, err := parseRow(record, idx)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		if _, err := i.repo.Upsert(ctx, in); err != nil {
			return count, fmt.Errorf("upsert %s: %w", in.Code, err)
		}
		count++
	}
	return count, nil
}

func parseRow(record []string, idx map[string]int) (affiliationrepo.UpsertInput, error) {
	cell := func(name string) string {
		pos, ok := idx[name]
		if !ok || pos >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[pos])
	}

	in := affiliationrepo.UpsertInput{
		UserID: cell("user_id"),
		Code:   cell("code"),
	}
	if in.UserID == "" || in.Code == "" {
		return in, errors.New("user_id and code required")
	}

	for _, raw := range splitCell(cell("requested_tests")) {
		code, ok := domain.ParseAssessmentCode(raw)
		if !ok || code == domain.CodeBundle {
			return in, fmt.Errorf("unknown requested test %q", raw)
		}
		in.RequestedTests = append(in.RequestedTests, code)
	}
	if len(in.RequestedTests) == 0 {
		return in, errors.New("at least one requested test required")
	}

	in.Discounts = make(map[domain.AssessmentCode]int64)
	for _, raw := range splitCell(cell("discounts")) {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			return in, fmt.Errorf("malformed discount %q", raw)
		}
		code, ok := domain.ParseAssessmentCode(strings.TrimSpace(parts[0]))
		if !ok || code == domain.CodeBundle {
			return in, fmt.Errorf("unknown discount test %q", parts[0])
		}
		amount, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || amount < 0 {
			return in, fmt.Errorf("malformed discount amount %q", parts[1])
		}
		in.Discounts[code] = amount
	}
	return in, nil
}

func splitCell(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
