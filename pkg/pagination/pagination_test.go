package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: DefaultLimit},
		{in: -5, want: DefaultLimit},
		{in: 10, want: 10},
		{in: MaxLimit + 50, want: MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Errorf("LimitWithBuffer(10) = %d, want 11", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		ID:        uuid.New(),
	}

	encoded := EncodeCursor(original)
	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected non-nil cursor")
	}
	if !parsed.Timestamp.Equal(original.Timestamp) {
		t.Fatalf("timestamp mismatch: got %s want %s", parsed.Timestamp, original.Timestamp)
	}
	if parsed.ID != original.ID {
		t.Fatalf("id mismatch: got %s want %s", parsed.ID, original.ID)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	cursor, err := ParseCursor("  ")
	if err != nil || cursor != nil {
		t.Fatalf("expected nil cursor for blank input, got %v / %v", cursor, err)
	}
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := ParseCursor("bm8tcGlwZS1oZXJl"); err == nil {
		t.Fatal("expected error for missing separator")
	}
}
