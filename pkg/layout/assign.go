package layout

// Placement pairs an item with its seat.
type Placement[T any] struct {
	Item T
	Seat Seat
}

// Assign seats items in order: the i-th item gets the i-th seat of
// Compute(len(items), width).
func Assign[T any](items []T, width float64) ([]Placement[T], error) {
	seats, err := Compute(len(items), width)
	if err != nil {
		return nil, err
	}
	out := make([]Placement[T], len(items))
	for i := range items {
		out[i] = Placement[T]{Item: items[i], Seat: seats[i]}
	}
	return out, nil
}
