package ingest

import (
	"reflect"
	"testing"
)

func TestKeywordExtractor(t *testing.T) {
	e := NewKeywordExtractor()

	t.Run("empty text", func(t *testing.T) {
		if got := e.Extract("   "); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("case insensitive match", func(t *testing.T) {
		got := e.Extract("Senior Python Developer with Django and PostgreSQL experience")
		want := []string{"python", "django", "postgresql"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v want %v", got, want)
		}
	})

	t.Run("vocabulary order is stable", func(t *testing.T) {
		a := e.Extract("docker kubernetes aws")
		b := e.Extract("kubernetes aws docker")
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("order differs: %v vs %v", a, b)
		}
	})

	t.Run("short terms respect word boundaries", func(t *testing.T) {
		got := e.Extract("senior django developer")
		for _, s := range got {
			if s == "go" || s == "r" {
				t.Fatalf("%q matched inside a longer word: %v", s, got)
			}
		}

		got = e.Extract("experience with go and r required")
		found := map[string]bool{}
		for _, s := range got {
			found[s] = true
		}
		if !found["go"] || !found["r"] {
			t.Fatalf("standalone short terms not matched: %v", got)
		}
	})

	t.Run("aliases map to canonical names", func(t *testing.T) {
		got := e.Extract("Golang engineer, Postgres and k8s, NodeJS services")
		found := map[string]bool{}
		for _, s := range got {
			found[s] = true
		}
		for _, want := range []string{"go", "postgresql", "kubernetes", "node.js"} {
			if !found[want] {
				t.Fatalf("alias for %q not matched: %v", want, got)
			}
		}
		if found["golang"] || found["k8s"] {
			t.Fatalf("aliases leaked into output: %v", got)
		}
	})

	t.Run("multi-word skills", func(t *testing.T) {
		got := e.Extract("we do Machine Learning and CI/CD here")
		found := map[string]bool{}
		for _, s := range got {
			found[s] = true
		}
		if !found["machine learning"] || !found["ci/cd"] {
			t.Fatalf("missing multi-word skills in %v", got)
		}
	})
}
