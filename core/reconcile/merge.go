package reconcile

import "fmt"

// Lookup flattens the grouping into a raw code -> target map.
// Every group needs a target and at least one code, and a raw code may belong
// to one group only.
func (g Grouping) Lookup() (map[string]string, error) {
	lookup := make(map[string]string)
	for i, grp := range g {
		key := fmt.Sprintf("grouping[%d]", i)
		if grp.Target == "" {
			return nil, &ConfigurationError{Key: key + ".target", Reason: "is required"}
		}
		if len(grp.Codes) == 0 {
			return nil, &ConfigurationError{Key: key + ".codes", Reason: "at least one rock code is required"}
		}
		for _, code := range grp.Codes {
			if prev, dup := lookup[code]; dup {
				return nil, &ConfigurationError{
					Key:    key + ".codes",
					Column: code,
					Reason: fmt.Sprintf("is already grouped into %q", prev),
				}
			}
			lookup[code] = grp.Target
		}
	}
	return lookup, nil
}

// Remap replaces the rock code of every grouped interval with its group
// target. Codes not mentioned in the grouping are untouched. The input is not
// modified.
func Remap(in []LithologyInterval, g Grouping) ([]LithologyInterval, error) {
	lookup, err := g.Lookup()
	if err != nil {
		return nil, err
	}
	out := make([]LithologyInterval, len(in))
	for i, iv := range in {
		if target, ok := lookup[iv.Rock]; ok {
			iv.Rock = target
		}
		out[i] = iv
	}
	return out, nil
}

// Merge remaps rock codes, orders intervals by (hole, from) and merges runs of
// consecutive intervals of the same hole and rock code into one interval
// spanning from the first From to the last To. Equal codes separated by a
// different code are not merged. The output Seq is the output position, so a
// second Merge is a no-op.
func Merge(in []LithologyInterval, g Grouping) ([]LithologyInterval, error) {
	remapped, err := Remap(in, g)
	if err != nil {
		return nil, err
	}
	if len(remapped) == 0 {
		return remapped, nil
	}

	remapped = sortedLithology(remapped)

	merged := make([]LithologyInterval, 0, len(remapped))
	current := remapped[0]
	for _, next := range remapped[1:] {
		if next.Hole == current.Hole && next.Rock == current.Rock {
			current.To = next.To
			continue
		}
		current.Seq = len(merged)
		merged = append(merged, current)
		current = next
	}
	current.Seq = len(merged)
	merged = append(merged, current)

	return merged, nil
}
