package reconciler

// Strategy resolves a member's votes when several voting entries match.
type Strategy interface {
	// Name identifies the strategy in results and logs.
	Name() string
	// Merge folds src into dst and returns how many bill ids collided.
	Merge(dst, src map[string]string) int
}

// LastWins lets the later-scanned voting entry overwrite earlier votes on
// the same bill.
func LastWins() Strategy {
	return lastWins{}
}

// FirstWins keeps the vote of the first matching entry.
func FirstWins() Strategy {
	return firstWins{}
}

type lastWins struct{}

func (lastWins) Name() string { return "last-wins" }

func (lastWins) Merge(dst, src map[string]string) int {
	collisions := 0
	for bill, vote := range src {
		if _, ok := dst[bill]; ok {
			collisions++
		}
		dst[bill] = vote
	}
	return collisions
}

type firstWins struct{}

func (firstWins) Name() string { return "first-wins" }

func (firstWins) Merge(dst, src map[string]string) int {
	collisions := 0
	for bill, vote := range src {
		if _, ok := dst[bill]; ok {
			collisions++
			continue
		}
		dst[bill] = vote
	}
	return collisions
}
