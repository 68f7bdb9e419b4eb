package layout

import "sync"

// Relayout remembers the last width class seen and tells callers whether a
// new container width needs fresh seat positions. Only a class change
// alters radii; within a class only the horizontal center moves.
type Relayout struct {
	mu    sync.Mutex
	class WidthClass
	width float64
	set   bool
}

// Observe records width and reports whether the width class changed since
// the previous observation. The first valid observation always reports true.
func (r *Relayout) Observe(width float64) (WidthClass, bool, error) {
	if err := validateWidth(width); err != nil {
		return "", false, err
	}
	class := ClassFor(width)

	r.mu.Lock()
	defer r.mu.Unlock()
	changed := !r.set || class != r.class
	r.class, r.width, r.set = class, width, true
	return class, changed, nil
}

// Current returns the last observed class and width.
func (r *Relayout) Current() (WidthClass, float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.class, r.width, r.set
}
