package reconcile

import "sort"

// HoleSet is a set of hole ids.
type HoleSet map[HoleID]struct{}

// Sorted returns the ids in ascending order.
func (s HoleSet) Sorted() []HoleID {
	out := make([]HoleID, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports membership.
func (s HoleSet) Has(h HoleID) bool {
	_, ok := s[h]
	return ok
}

// LithologyHoles returns the hole ids of a lithology interval set.
func LithologyHoles(in []LithologyInterval) HoleSet {
	set := make(HoleSet)
	for _, iv := range in {
		set[iv.Hole] = struct{}{}
	}
	return set
}

// AssayHoles returns the hole ids of an assay interval set.
func AssayHoles(in []AssayInterval) HoleSet {
	set := make(HoleSet)
	for _, iv := range in {
		set[iv.Hole] = struct{}{}
	}
	return set
}

// Intersect returns the ids present in both sets.
func Intersect(a, b HoleSet) HoleSet {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(HoleSet)
	for h := range a {
		if b.Has(h) {
			out[h] = struct{}{}
		}
	}
	return out
}

// Difference returns the ids of a that are not in b.
func Difference(a, b HoleSet) HoleSet {
	out := make(HoleSet)
	for h := range a {
		if !b.Has(h) {
			out[h] = struct{}{}
		}
	}
	return out
}

// CommonHoles restricts both interval sets to the hole ids present in both.
// The inputs are not modified; source order is preserved. An empty
// intersection yields two empty slices.
func CommonHoles(lith []LithologyInterval, assay []AssayInterval) ([]LithologyInterval, []AssayInterval, HoleSet) {
	common := Intersect(LithologyHoles(lith), AssayHoles(assay))

	outLith := make([]LithologyInterval, 0, len(lith))
	for _, iv := range lith {
		if common.Has(iv.Hole) {
			outLith = append(outLith, iv)
		}
	}
	outAssay := make([]AssayInterval, 0, len(assay))
	for _, iv := range assay {
		if common.Has(iv.Hole) {
			outAssay = append(outAssay, iv)
		}
	}
	return outLith, outAssay, common
}

// HoleDiff lists hole ids present in one source but absent in the other.
type HoleDiff struct {
	MissingInAssay     []HoleID `json:"missing_in_assay"`
	MissingInLithology []HoleID `json:"missing_in_lithology"`
}

// Empty reports whether both sources cover the same holes.
func (d HoleDiff) Empty() bool {
	return len(d.MissingInAssay) == 0 && len(d.MissingInLithology) == 0
}

// DiffHoles compares the hole ids of the two sources.
func DiffHoles(lith, assay HoleSet) HoleDiff {
	return HoleDiff{
		MissingInAssay:     Difference(lith, assay).Sorted(),
		MissingInLithology: Difference(assay, lith).Sorted(),
	}
}
