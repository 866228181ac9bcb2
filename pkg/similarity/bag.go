package similarity

import "sort"

// ContentBag is the lemma multiset of one vertex. The id distinguishes
// vertices whose text happens to be identical.
type ContentBag struct {
	id     uint64
	counts map[string]int
	total  int
}

// NewBag counts lemmas into a bag
func NewBag(id uint64, lemmas []string) *ContentBag {
	b := &ContentBag{id: id, counts: make(map[string]int, len(lemmas))}
	for _, l := range lemmas {
		b.counts[l]++
		b.total++
	}
	return b
}

// ID returns the bag's vertex id
func (b *ContentBag) ID() uint64 {
	return b.id
}

// Count returns how often lemma occurs
func (b *ContentBag) Count(lemma string) int {
	return b.counts[lemma]
}

// Size returns the number of distinct lemmas
func (b *ContentBag) Size() int {
	return len(b.counts)
}

// Total returns the number of lemma occurrences
func (b *ContentBag) Total() int {
	return b.total
}

// Lemmas returns the distinct lemmas in sorted order
func (b *ContentBag) Lemmas() []string {
	lemmas := make([]string, 0, len(b.counts))
	for l := range b.counts {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)
	return lemmas
}

// Similarity is the weighted Jaccard index of two bags: the sum of the
// per-lemma minimum counts over the sum of the maximum counts. It is 0 when
// either bag is empty.
func Similarity(x, y *ContentBag) float64 {
	if x.total == 0 || y.total == 0 {
		return 0
	}

	var minSum, maxSum int
	for lemma, cx := range x.counts {
		cy := y.counts[lemma]
		minSum += min(cx, cy)
		maxSum += max(cx, cy)
	}
	for lemma, cy := range y.counts {
		if _, ok := x.counts[lemma]; !ok {
			maxSum += cy
		}
	}

	return float64(minSum) / float64(maxSum)
}
