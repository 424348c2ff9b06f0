package matching

import "testing"

func TestScoreFullOverlap(t *testing.T) {
	got := Score([]string{"Go", "PostgreSQL"}, "Senior Go engineer, PostgreSQL experience required")
	if got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
}

func TestScorePartialOverlap(t *testing.T) {
	got := Score([]string{"go", "kubernetes", "react"}, "Backend role: Go and Kubernetes")
	if got != 66.7 {
		t.Fatalf("score = %v, want 66.7", got)
	}
}

func TestScoreNoTerms(t *testing.T) {
	if got := Score(nil, "anything"); got != 0 {
		t.Fatalf("score = %v, want 0 for empty profile", got)
	}
}

func TestScoreWholeTokenMatching(t *testing.T) {
	if got := Score([]string{"go"}, "outgoing person wanted"); got != 0 {
		t.Fatalf("score = %v, single-word terms must match whole tokens", got)
	}
}

func TestScoreMultiWordTerms(t *testing.T) {
	got := Score([]string{"machine learning"}, "Machine Learning Engineer")
	if got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
}

func TestScoreDeduplicatesTerms(t *testing.T) {
	a := Score([]string{"go", "Go", "GO", "react"}, "Go developer")
	b := Score([]string{"go", "react"}, "Go developer")
	if a != b {
		t.Fatalf("duplicate terms changed the score: %v != %v", a, b)
	}
}

func TestScoreDeterministic(t *testing.T) {
	terms := []string{"go", "grpc", "aws", "terraform"}
	text := "Platform engineer: Go, AWS, Terraform"
	first := Score(terms, text)
	for i := 0; i < 5; i++ {
		if got := Score(terms, text); got != first {
			t.Fatalf("score varied between runs: %v != %v", got, first)
		}
	}
}
