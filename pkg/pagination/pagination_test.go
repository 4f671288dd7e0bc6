package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestTrim(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	page, more := Trim(rows, 3)
	if !more {
		t.Fatal("expected another page")
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page))
	}

	page, more = Trim(rows, 4)
	if more {
		t.Fatal("did not expect another page")
	}
	if len(page) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(page))
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 4, 1, 12, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	decoded, err := Decode(Encode(original))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) || decoded.ID != original.ID {
		t.Fatalf("cursor mismatch: %+v", decoded)
	}
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	cursor, err := Decode("  ")
	if err != nil || cursor != nil {
		t.Fatalf("expected nil cursor for blank input, got %v / %v", cursor, err)
	}
	if _, err := Decode("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid cursor")
	}
}
