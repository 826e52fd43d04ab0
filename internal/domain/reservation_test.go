package domain_test

import (
	"testing"

	"hoteldb/internal/domain"
)

func TestParseDate(t *testing.T) {
	got, err := domain.ParseDate("2025-07-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2025 || got.Month() != 7 || got.Day() != 2 {
		t.Fatalf("unexpected date: %v", got)
	}
	if _, err := domain.ParseDate("02/07/2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
