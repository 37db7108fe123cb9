package challenge

import (
	"math/rand"
	"testing"

	"concurseiro-challenge-service/internal/domain"
)

func TestSelectGlossaryShape(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	terms := []domain.GlossaryTerm{
		{Term: "Habeas Corpus", Definition: "Remédio constitucional contra prisão ilegal."},
	}

	items := SelectGlossary(rnd, terms, 5)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if len(item.Options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(item.Options))
	}
	found := 0
	for _, opt := range item.Options {
		if opt == terms[0].Definition {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected the true definition exactly once among options, got %d", found)
	}
	if item.CorrectAnswer != terms[0].Definition {
		t.Fatalf("expected correctAnswer to equal the definition verbatim")
	}
	if item.Statement == "" || item.Justification == "" {
		t.Fatalf("expected statement and justification to be filled, got %+v", item)
	}
}

func TestSelectGlossaryTruncates(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	terms := []domain.GlossaryTerm{
		{Term: "t1", Definition: "d1"},
		{Term: "t2", Definition: "d2"},
		{Term: "t3", Definition: "d3"},
	}

	items := SelectGlossary(rnd, terms, 2)
	if len(items) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(items))
	}
}

func TestSelectGlossaryEmptyPool(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	if items := SelectGlossary(rnd, nil, 10); len(items) != 0 {
		t.Fatalf("expected empty result, got %d", len(items))
	}
}
