package section

import "context"

// assigner walks a document's lines in order, carrying the current category
// forward and applying the two-threshold hysteresis policy. The state is a
// local value scoped to one assign call, so parallel documents never share it.
type assigner struct {
	scorer    *Scorer
	heuristic HeuristicConfig
	override  float64
}

// assign distributes every line into exactly one category's list. Lines
// consumed as headings are not appended anywhere; everything else is appended
// verbatim, blank lines included.
func (a *assigner) assign(ctx context.Context, lines []string) (map[Category][]string, error) {
	buckets := make(map[Category][]string, len(Categories()))
	for _, c := range Categories() {
		buckets[c] = nil
	}

	current := Other
	for _, line := range lines {
		if !IsHeadingShaped(line, a.heuristic) {
			buckets[current] = append(buckets[current], line)
			continue
		}

		cls, err := a.scorer.Classify(ctx, line)
		if err != nil {
			return nil, err
		}

		switch {
		case cls.Category == Other:
			// Below the base threshold: a short non-matching line (a name,
			// a phone number) is ordinary content, not a heading.
			buckets[current] = append(buckets[current], line)
		case cls.Category == current:
			// Re-affirming heading for the active section. Consume it.
		case cls.Score >= a.override:
			// Strong enough to interrupt the active section.
			current = cls.Category
		default:
			// Classified, but not confidently enough to switch away from an
			// established section. Keep it as content where we are.
			buckets[current] = append(buckets[current], line)
		}
	}

	return buckets, nil
}
