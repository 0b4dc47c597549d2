package sheets

import "testing"

func TestColumnLetter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tc := range cases {
		if got := columnLetter(tc.index); got != tc.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestMapRow(t *testing.T) {
	t.Parallel()

	headers := []string{ColJobID, ColStatus, ColTitle, ColNotes}
	raw := []any{"abc123", StatusNew, "Data Engineer"}

	row := mapRow(headers, 2, raw)

	if row.Number != 2 {
		t.Fatalf("expected row number 2, got %d", row.Number)
	}
	if got := row.Get(ColJobID); got != "abc123" {
		t.Fatalf("unexpected job id: %q", got)
	}
	if got := row.Get(ColStatus); got != StatusNew {
		t.Fatalf("unexpected status: %q", got)
	}
	if got := row.Get(ColNotes); got != "" {
		t.Fatalf("missing trailing cell should read empty, got %q", got)
	}
}
