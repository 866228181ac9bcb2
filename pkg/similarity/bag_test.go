package similarity

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want float64
	}{
		{"identical", []string{"mix", "milk"}, []string{"milk", "mix"}, 1},
		{"disjoint", []string{"mix"}, []string{"bake"}, 0},
		{"weighted overlap", []string{"egg", "egg", "milk"}, []string{"egg", "sugar"}, 1.0 / 4.0},
		{"repeated lemma", []string{"stir", "stir"}, []string{"stir"}, 0.5},
		{"empty left", nil, []string{"mix"}, 0},
		{"both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(NewBag(0, tt.x), NewBag(1, tt.y))
			if got != tt.want {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentBag(t *testing.T) {
	b := NewBag(7, []string{"egg", "milk", "egg"})

	if b.ID() != 7 {
		t.Errorf("Expected id 7, got %d", b.ID())
	}
	if b.Count("egg") != 2 || b.Count("flour") != 0 {
		t.Errorf("Unexpected counts: egg=%d flour=%d", b.Count("egg"), b.Count("flour"))
	}
	if b.Size() != 2 || b.Total() != 3 {
		t.Errorf("Expected size 2 total 3, got %d %d", b.Size(), b.Total())
	}
	if lemmas := b.Lemmas(); len(lemmas) != 2 || lemmas[0] != "egg" || lemmas[1] != "milk" {
		t.Errorf("Lemmas() = %v", lemmas)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)
	vocabulary := []string{"egg", "milk", "flour", "sugar", "butter", "salt"}
	lemmas := gen.SliceOf(gen.IntRange(0, len(vocabulary)-1)).Map(func(idx []int) []string {
		words := make([]string, len(idx))
		for i, j := range idx {
			words[i] = vocabulary[j]
		}
		return words
	})

	properties.Property("similarity lies in [0, 1]", prop.ForAll(
		func(x, y []string) bool {
			s := Similarity(NewBag(0, x), NewBag(1, y))
			return s >= 0 && s <= 1
		},
		lemmas,
		lemmas,
	))

	properties.Property("similarity is symmetric", prop.ForAll(
		func(x, y []string) bool {
			return Similarity(NewBag(0, x), NewBag(1, y)) == Similarity(NewBag(1, y), NewBag(0, x))
		},
		lemmas,
		lemmas,
	))

	properties.Property("a non-empty bag is fully similar to itself", prop.ForAll(
		func(x []string) bool {
			if len(x) == 0 {
				return true
			}
			return Similarity(NewBag(0, x), NewBag(1, x)) == 1
		},
		lemmas,
	))

	properties.TestingRun(t)
}
