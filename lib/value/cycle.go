package value

// path holds the containers currently being walked by a recursive
// traversal, so a container that holds itself is visited once.
type path map[Value]bool

func (p path) enter(c Value) bool {
	if p[c] {
		return false
	}
	p[c] = true
	return true
}

func (p path) leave(c Value) {
	delete(p, c)
}

// cyclic reports whether v contains itself, directly or through nested
// containers.
func cyclic(v Value) bool {
	return hasCycle(v, path{})
}

func hasCycle(v Value, p path) bool {
	switch c := v.(type) {
	case *Array:
		if !p.enter(c) {
			return true
		}
		defer p.leave(c)
		for _, e := range c.values {
			if hasCycle(e, p) {
				return true
			}
		}
	case *Dict:
		if !p.enter(c) {
			return true
		}
		defer p.leave(c)
		found := false
		c.Iter(func(_, e Value) bool {
			found = hasCycle(e, p)
			return !found
		})
		return found
	}
	return false
}

// quoteIn renders v like Quote, continuing the walk in p for containers.
func quoteIn(v Value, p path) string {
	switch c := v.(type) {
	case *Array:
		return c.display(p)
	case *Dict:
		return c.display(p)
	}
	return Quote(v)
}

type pair struct {
	l, r Value
}

// equal compares l and r structurally. A pair of containers already under
// comparison is assumed equal, which ends the walk on cyclic values.
func equal(l, r Value, seen map[pair]bool) bool {
	switch lc := l.(type) {
	case *Array:
		rc, ok := r.(*Array)
		if !ok {
			return false
		}
		if lc == rc || seen[pair{lc, rc}] {
			return true
		}
		if len(lc.values) != len(rc.values) {
			return false
		}
		seen[pair{lc, rc}] = true
		for i, e := range lc.values {
			if !equal(e, rc.values[i], seen) {
				return false
			}
		}
		return true
	case *Dict:
		rc, ok := r.(*Dict)
		if !ok {
			return false
		}
		if lc == rc || seen[pair{lc, rc}] {
			return true
		}
		if lc.Len() != rc.Len() {
			return false
		}
		seen[pair{lc, rc}] = true
		it := lc.m.Iterator()
		for it.Next() {
			o, found := rc.m.Get(it.Key())
			if !found || !equal(it.Value().(entry).val, o.(entry).val, seen) {
				return false
			}
		}
		return true
	}
	return l.Equal(r)
}
