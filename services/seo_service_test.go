package services

import (
	"testing"

	"template_directory/models"
)

func TestBuildMeta(t *testing.T) {
	cfg := testConfig()
	cfg.SEO.SiteName = "Template Directory"
	cfg.SEO.BaseURL = "https://example.com/"
	cfg.SEO.DescriptionLen = 160

	seo := NewSEOService(nil, cfg)

	meta := seo.BuildMeta(&models.Template{
		ID:          "t1",
		Name:        "Slack Alerts to Tickets",
		Description: "Turns alert messages from a Slack channel into tickets automatically.",
		Category:    "devops",
		Tags:        []string{"slack", "alerts", "slack"},
	})

	if meta.Title != "Slack Alerts to Tickets - Template Directory" {
		t.Errorf("unexpected title: %q", meta.Title)
	}
	if meta.Description == "" {
		t.Error("description must not be empty")
	}
	if meta.Canonical != "https://example.com/templates/slack-alerts-to-tickets" {
		t.Errorf("unexpected canonical: %q", meta.Canonical)
	}

	// tags deduplicated, category appended
	expected := []string{"slack", "alerts", "devops"}
	if len(meta.Keywords) != len(expected) {
		t.Fatalf("expected %d keywords, got %v", len(expected), meta.Keywords)
	}
	for i, kw := range expected {
		if meta.Keywords[i] != kw {
			t.Errorf("keyword %d: expected %q, got %q", i, kw, meta.Keywords[i])
		}
	}
}

func TestBuildMetaFallsBackToName(t *testing.T) {
	seo := NewSEOService(nil, testConfig())

	meta := seo.BuildMeta(&models.Template{ID: "t2", Name: "Minimal"})
	if meta.Description != "Minimal" {
		t.Errorf("description should fall back to the name, got %q", meta.Description)
	}
}
