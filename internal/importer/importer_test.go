package importer

import (
	"context"
	"strings"
	"testing"

	"supsindex-navigator/internal/domain"
	affiliationrepo "supsindex-navigator/internal/repository/affiliation"
)

type stubWriter struct {
	upserted []affiliationrepo.UpsertInput
}

func (s *stubWriter) Upsert(_ context.Context, in affiliationrepo.UpsertInput) (*domain.AffiliationCode, error) {
	s.upserted = append(s.upserted, in)
	return &domain.AffiliationCode{ID: "aff-1", UserID: in.UserID, Code: in.Code}, nil
}

func TestRunImportsRows(t *testing.T) {
	csvData := strings.Join([]string{
		"user_id,code,requested_tests,discounts",
		"u1,PARTNER-ACME,FPA|GEB,FPA:10|GEB:5",
		"u2,PARTNER-BETA,EEA,",
	}, "\n")

	repo := &stubWriter{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows imported, got %d", count)
	}

	first := repo.upserted[0]
	if first.UserID != "u1" || first.Code != "PARTNER-ACME" {
		t.Fatalf("row 1 mismatch: %+v", first)
	}
	if len(first.RequestedTests) != 2 || first.RequestedTests[0] != domain.CodeFPA || first.RequestedTests[1] != domain.CodeGEB {
		t.Fatalf("requested tests mismatch: %+v", first.RequestedTests)
	}
	if first.Discounts[domain.CodeFPA] != 10 || first.Discounts[domain.CodeGEB] != 5 {
		t.Fatalf("discounts mismatch: %+v", first.Discounts)
	}

	second := repo.upserted[1]
	if len(second.Discounts) != 0 {
		t.Fatalf("empty discounts cell must import as none, got %+v", second.Discounts)
	}
}

func TestRunHeaderVariants(t *testing.T) {
	csvData := strings.Join([]string{
		" User_ID , Code , Requested_Tests , Discounts ",
		"u1,P1,FPA,",
	}, "\n")

	repo := &stubWriter{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "user_id,code\nu1,P1"},
		{"unknown test", "user_id,code,requested_tests\nu1,P1,XYZ"},
		{"bundle not allowed", "user_id,code,requested_tests\nu1,P1,BUNDLE"},
		{"malformed discount", "user_id,code,requested_tests,discounts\nu1,P1,FPA,FPA"},
		{"negative discount", "user_id,code,requested_tests,discounts\nu1,P1,FPA,FPA:-3"},
		{"empty user id", "user_id,code,requested_tests\n,P1,FPA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubWriter{}
			if _, err := NewCSVImporter(strings.NewReader(tc.csv), repo).Run(context.Background()); err == nil {
				t.Fatal("expected an error")
			}
			if len(repo.upserted) != 0 {
				t.Fatalf("bad row must not be upserted: %+v", repo.upserted)
			}
		})
	}
}
