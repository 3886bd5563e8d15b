package models

import (
	"encoding/json"
	"testing"
)

func TestParsePopularityStructured(t *testing.T) {
	p := ParsePopularity(`{"views": 120, "downloads": 45}`)
	if p.Views != 120 || p.Downloads != 45 {
		t.Errorf("expected {120 45}, got %+v", p)
	}
}

func TestParsePopularityStringEncoded(t *testing.T) {
	// legacy rows double-encode the object as a JSON string
	p := ParsePopularity(`"{\"views\": 7, \"downloads\": 3}"`)
	if p.Views != 7 || p.Downloads != 3 {
		t.Errorf("expected {7 3}, got %+v", p)
	}
}

func TestParsePopularityEmptyAndGarbage(t *testing.T) {
	if p := ParsePopularity(""); p.Views != 0 || p.Downloads != 0 {
		t.Errorf("empty input: expected zero value, got %+v", p)
	}
	if p := ParsePopularity("not json at all"); p.Views != 0 || p.Downloads != 0 {
		t.Errorf("garbage input: expected zero value, got %+v", p)
	}
}

func TestParsePopularityClampsNegatives(t *testing.T) {
	p := ParsePopularity(`{"views": -5, "downloads": -1}`)
	if p.Views != 0 || p.Downloads != 0 {
		t.Errorf("negative counters must clamp to zero, got %+v", p)
	}
}

func TestPopularityUnmarshalInsideTemplate(t *testing.T) {
	var tpl Template
	raw := `{"id":"t1","name":"demo","popularity":"{\"views\":10,\"downloads\":2}"}`
	if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tpl.Popularity.Views != 10 || tpl.Popularity.Downloads != 2 {
		t.Errorf("expected {10 2}, got %+v", tpl.Popularity)
	}
}

func TestPopularityTotal(t *testing.T) {
	p := Popularity{Views: 3, Downloads: 4}
	if p.Total() != 7 {
		t.Errorf("expected 7, got %d", p.Total())
	}
}
