package services

import (
	"math"
	"testing"

	"template_directory/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreCategoryMatch(t *testing.T) {
	source := models.Template{ID: "s", Category: "marketing"}
	match := models.Template{ID: "a", Category: "marketing"}
	miss := models.Template{ID: "b", Category: "devops"}

	if got := scoreTemplate(match, source, nil); !almostEqual(got, categoryWeight) {
		t.Errorf("category match: expected %v, got %v", categoryWeight, got)
	}
	if got := scoreTemplate(miss, source, nil); !almostEqual(got, 0) {
		t.Errorf("category miss: expected 0, got %v", got)
	}
}

func TestScoreEmptyCategoryNeverMatches(t *testing.T) {
	source := models.Template{ID: "s"}
	candidate := models.Template{ID: "a"}

	if got := scoreTemplate(candidate, source, nil); !almostEqual(got, 0) {
		t.Errorf("two empty categories must not match: got %v", got)
	}
}

func TestScoreTagOverlap(t *testing.T) {
	source := models.Template{ID: "s"}

	tests := []struct {
		name      string
		candTags  []string
		queryTags []string
		expected  float64
	}{
		{"full overlap", []string{"crm", "email"}, []string{"crm", "email"}, tagWeight},
		{"half overlap", []string{"crm", "email"}, []string{"crm", "slack"}, tagWeight / 2},
		{"no overlap", []string{"crm"}, []string{"slack"}, 0},
		{"no tags anywhere", nil, nil, 0},
		{"candidate has more tags", []string{"a", "b", "c", "d"}, []string{"a"}, tagWeight * 1 / 4},
		{"duplicate tags count once", []string{"crm", "crm"}, []string{"crm"}, tagWeight},
	}

	for _, tt := range tests {
		candidate := models.Template{ID: "c", Tags: tt.candTags}
		got := scoreTemplate(candidate, source, tt.queryTags)
		if !almostEqual(got, tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestScoreCollaborativeUsesPopularitySum(t *testing.T) {
	// 1000+0 and 500+500 have the same total, similarity must be exactly 1
	source := models.Template{ID: "s", Popularity: models.Popularity{Views: 1000, Downloads: 0}}
	candidate := models.Template{ID: "c", Popularity: models.Popularity{Views: 500, Downloads: 500}}

	// collab term is full, plus the normalized popularity term for total 1000
	expected := collabWeight + popularityWeight*1.0
	if got := scoreTemplate(candidate, source, nil); !almostEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestScoreCollaborativeDistance(t *testing.T) {
	source := models.Template{ID: "s", Popularity: models.Popularity{Views: 100}}
	candidate := models.Template{ID: "c", Popularity: models.Popularity{Views: 50}}

	// similarity = 1 - 50/100 = 0.5, popularity term = 10 * 50/1000
	expected := collabWeight*0.5 + popularityWeight*50/popularitySaturation
	if got := scoreTemplate(candidate, source, nil); !almostEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestScorePopularitySaturation(t *testing.T) {
	source := models.Template{ID: "s", Popularity: models.Popularity{Views: 50000}}
	candidate := models.Template{ID: "c", Popularity: models.Popularity{Views: 50000}}

	// both terms saturate: similarity 1, popularity capped at full weight
	expected := collabWeight + popularityWeight
	if got := scoreTemplate(candidate, source, nil); !almostEqual(got, expected) {
		t.Errorf("mega-popular candidate: expected %v, got %v", expected, got)
	}
}

func TestScoreMaximum(t *testing.T) {
	source := models.Template{ID: "s", Category: "marketing", Popularity: models.Popularity{Views: 1000}}
	candidate := models.Template{
		ID:         "c",
		Category:   "marketing",
		Tags:       []string{"crm", "email"},
		Popularity: models.Popularity{Views: 1000},
	}

	if got := scoreTemplate(candidate, source, []string{"crm", "email"}); !almostEqual(got, 100) {
		t.Errorf("perfect candidate should score 100, got %v", got)
	}
}

func TestScoreZeroPopularityBothSides(t *testing.T) {
	source := models.Template{ID: "s"}
	candidate := models.Template{ID: "c"}

	// max(p,p,1) guard: no division by zero, similarity term stays full
	if got := scoreTemplate(candidate, source, nil); !almostEqual(got, collabWeight) {
		t.Errorf("zero popularity on both sides: expected %v, got %v", collabWeight, got)
	}
}
