package utils

import (
	"strings"
	"testing"
)

func TestDeduplicateSlice(t *testing.T) {
	got := DeduplicateSlice([]string{"crm", " email ", "crm", "", "email"})
	if len(got) != 2 || got[0] != "crm" || got[1] != "email" {
		t.Errorf("expected [crm email], got %v", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Slack Alerts to Tickets", "slack-alerts-to-tickets"},
		{"  CRM -> Email!! ", "crm-email"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short text", 100); got != "short text" {
		t.Errorf("short input must pass through, got %q", got)
	}

	long := strings.Repeat("word ", 50)
	got := TruncateText(long, 40)
	if len(got) > 44 { // 40 chars plus ellipsis
		t.Errorf("truncated text too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestMin(t *testing.T) {
	if Min(2, 5) != 2 || Min(5, 2) != 2 {
		t.Error("Min is broken")
	}
}
