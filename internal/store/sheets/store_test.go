package sheets

import (
	"testing"

	"google.golang.org/api/googleapi"
)

func TestIsHeaderRow(t *testing.T) {
	header := []interface{}{"Timestamp", "Emotion", "Category", "Diary Text", "x", "y", "z"}
	if !isHeaderRow(header) {
		t.Fatal("expected the literal header row to be recognized")
	}

	record := []interface{}{"2026-08-31-09:05", "기쁨", "관계", "친구랑 카페 갔다", 1.0, 2.0, 3.0}
	if isHeaderRow(record) {
		t.Fatal("a data row must not be treated as a header")
	}

	short := []interface{}{"Timestamp", "Emotion"}
	if isHeaderRow(short) {
		t.Fatal("a short row must not be treated as a header")
	}
}

func TestIsMissingSheet(t *testing.T) {
	missing := &googleapi.Error{Code: 400, Message: "Unable to parse range: 'abc'!A:G"}
	if !isMissingSheet(missing) {
		t.Fatal("expected a parse-range 400 to count as a missing sheet")
	}

	other := &googleapi.Error{Code: 400, Message: "Invalid value"}
	if isMissingSheet(other) {
		t.Fatal("other 400s are real errors")
	}

	denied := &googleapi.Error{Code: 403, Message: "The caller does not have permission"}
	if isMissingSheet(denied) {
		t.Fatal("a 403 is a real error")
	}
}

func TestCellFloat(t *testing.T) {
	if got := cellFloat(1.5); got != 1.5 {
		t.Fatalf("float cell: got %v", got)
	}
	if got := cellFloat("-2.25"); got != -2.25 {
		t.Fatalf("string cell: got %v", got)
	}
	if got := cellFloat("not-a-number"); got != 0 {
		t.Fatalf("bad cell must parse to zero, got %v", got)
	}
}
