package routing

import (
	"sort"
	"testing"
)

func TestHierarchyResolver_Resolve(t *testing.T) {
	h := NewHierarchyResolver(0)
	h.Register("implants", []string{"oral-surgery"})
	h.Register("oral-surgery", []string{"maxillofacial"})

	tests := []struct {
		name    string
		skillID string
		want    []string
	}{
		{
			name:    "unregistered skill resolves to itself",
			skillID: "cleaning",
			want:    []string{"cleaning"},
		},
		{
			name:    "direct parent included",
			skillID: "oral-surgery",
			want:    []string{"maxillofacial", "oral-surgery"},
		},
		{
			name:    "transitive closure included",
			skillID: "implants",
			want:    []string{"implants", "maxillofacial", "oral-surgery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Resolve(tt.skillID)
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestHierarchyResolver_CycleGuard(t *testing.T) {
	h := NewHierarchyResolver(0)
	h.Register("a", []string{"b"})
	h.Register("b", []string{"c"})
	h.Register("c", []string{"a"}) // 环

	got := h.Resolve("a")
	if len(got) != 3 {
		t.Fatalf("expected 3 skills, got %v", got)
	}
}

func TestHierarchyResolver_DepthLimit(t *testing.T) {
	h := NewHierarchyResolver(2)
	h.Register("s1", []string{"s2"})
	h.Register("s2", []string{"s3"})
	h.Register("s3", []string{"s4"})

	got := h.Resolve("s1")
	for _, id := range got {
		if id == "s4" {
			t.Fatalf("s4 should be beyond depth limit, got %v", got)
		}
	}
}

func TestHierarchyResolver_RegisterOverwrites(t *testing.T) {
	h := NewHierarchyResolver(0)
	h.Register("a", []string{"b"})
	h.Register("a", []string{"c"})

	got := h.Resolve("a")
	for _, id := range got {
		if id == "b" {
			t.Fatalf("old mapping should be gone, got %v", got)
		}
	}
}

func TestHierarchyResolver_Reset(t *testing.T) {
	h := NewHierarchyResolver(0)
	h.Register("a", []string{"b"})
	h.Reset()

	got := h.Resolve("a")
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected only self after reset, got %v", got)
	}
}
