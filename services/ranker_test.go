package services

import (
	"testing"

	"template_directory/models"
)

func scoredItem(id string, score float64) models.ScoredTemplate {
	return models.ScoredTemplate{
		Template: models.Template{ID: id},
		Score:    score,
	}
}

func TestRankDescending(t *testing.T) {
	scored := []models.ScoredTemplate{
		scoredItem("low", 10),
		scoredItem("high", 90),
		scoredItem("mid", 50),
	}

	result := rankTemplates(scored, 10)

	expected := []string{"high", "mid", "low"}
	if len(result) != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), len(result))
	}
	for i, id := range expected {
		if result[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, result[i].ID)
		}
	}
}

func TestRankStableTieBreak(t *testing.T) {
	// equal scores must keep candidate-source order
	scored := []models.ScoredTemplate{
		scoredItem("first", 50),
		scoredItem("second", 50),
		scoredItem("third", 50),
		scoredItem("top", 80),
	}

	result := rankTemplates(scored, 10)

	expected := []string{"top", "first", "second", "third"}
	for i, id := range expected {
		if result[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, result[i].ID)
		}
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	scored := []models.ScoredTemplate{
		scoredItem("a", 1),
		scoredItem("b", 2),
		scoredItem("c", 3),
	}

	result := rankTemplates(scored, 2)
	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}
	if result[0].ID != "c" || result[1].ID != "b" {
		t.Errorf("expected [c b], got [%s %s]", result[0].ID, result[1].ID)
	}
}

func TestRankEmptyInput(t *testing.T) {
	result := rankTemplates(nil, 5)
	if len(result) != 0 {
		t.Errorf("expected empty result, got %d items", len(result))
	}
}
