package recommender

import (
	"fmt"
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := tokenize("Wireless-Earbuds, 2nd Gen!")
	want := []string{"wireless", "earbuds", "2nd", "gen"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestNgrams(t *testing.T) {
	terms := ngrams([]string{"a", "b", "c"})
	// 3 unigrams + 2 bigrams
	if len(terms) != 5 {
		t.Fatalf("expected 5 terms, got %v", terms)
	}
	if terms[3] != "a b" || terms[4] != "b c" {
		t.Errorf("unexpected bigrams: %v", terms)
	}

	if got := ngrams(nil); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
}

func TestContentSimilarityIdenticalTexts(t *testing.T) {
	features := []ProductFeature{
		{ID: 1, Text: "portable bluetooth speaker"},
		{ID: 2, Text: "portable bluetooth speaker"},
		{ID: 3, Text: "quiet garden novel"},
	}
	sim := ContentSimilarity(features)

	if got := sim.At(1, 2); got < 0.999 {
		t.Errorf("identical texts should have similarity ~1, got %f", got)
	}
	if got := sim.At(1, 3); got != 0 {
		t.Errorf("disjoint texts should have similarity 0, got %f", got)
	}
	if got := sim.At(1, 1); got < 0.999 {
		t.Errorf("self-similarity should be ~1, got %f", got)
	}
}

func TestContentSimilarityBounds(t *testing.T) {
	features := []ProductFeature{
		{ID: 1, Text: "red cotton shirt"},
		{ID: 2, Text: "red wool scarf"},
		{ID: 3, Text: ""},
	}
	sim := ContentSimilarity(features)

	for _, a := range sim.IDs {
		for _, b := range sim.IDs {
			v := sim.At(a, b)
			if v < 0 || v > 1.0000001 {
				t.Errorf("similarity out of [0,1] at (%d,%d): %f", a, b, v)
			}
		}
	}
	// product with empty text has a zero vector
	if got := sim.At(3, 1); got != 0 {
		t.Errorf("empty text should have zero similarity, got %f", got)
	}
}

func TestVocabularyCap(t *testing.T) {
	totals := make(map[string]int, 6000)
	for i := 0; i < 6000; i++ {
		totals[fmt.Sprintf("term%04d", i)] = i + 1
	}
	vocab := buildVocabulary(totals)
	if len(vocab) > maxVocabulary {
		t.Errorf("vocabulary must be capped at %d, got %d", maxVocabulary, len(vocab))
	}
}
