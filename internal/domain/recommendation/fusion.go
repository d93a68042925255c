package recommendation

// NeedsSecondary reports whether the primary source returned fewer than half
// of the requested count, rounding the half down.
func NeedsSecondary(primaryCount, k int) bool {
	return primaryCount < k/2
}

// Fuse merges primary and secondary results. Primary results keep their order
// and precedence; secondary results are appended in their own order, skipping
// any ID already present. The output is truncated to k.
func Fuse(primary, secondary []Scored, k int) ([]Scored, Source) {
	out := make([]Scored, 0, k)
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	fromPrimary, fromSecondary := 0, 0

	add := func(s Scored) bool {
		if len(out) >= k {
			return false
		}
		if _, dup := seen[s.Candidate.ID]; dup {
			return true
		}
		seen[s.Candidate.ID] = struct{}{}
		out = append(out, s)
		return true
	}

	for _, s := range primary {
		if !add(s) {
			break
		}
		fromPrimary = len(out)
	}
	for _, s := range secondary {
		before := len(out)
		if !add(s) {
			break
		}
		fromSecondary += len(out) - before
	}

	return out, dataSource(fromPrimary, fromSecondary, primary, secondary)
}

func dataSource(fromPrimary, fromSecondary int, primary, secondary []Scored) Source {
	src := func(items []Scored) Source {
		if len(items) == 0 {
			return SourceLocal
		}
		return items[0].Candidate.Source
	}
	switch {
	case fromPrimary > 0 && fromSecondary > 0:
		return SourceMixed
	case fromPrimary > 0:
		return src(primary)
	case fromSecondary > 0:
		return src(secondary)
	default:
		return SourceNone
	}
}
