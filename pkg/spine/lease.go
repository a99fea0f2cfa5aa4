package spine

// owner is the generation counter shared by a skeleton and every handle
// derived from it.
type owner struct {
	gen      uint64
	released bool
	rt       Runtime
}

// lease ties a handle to the owner generation it was created under.
type lease struct {
	owner *owner
	gen   uint64
}

func (o *owner) lease() lease {
	return lease{owner: o, gen: o.gen}
}

func (l lease) live() bool {
	return l.owner != nil && !l.owner.released && l.owner.gen == l.gen
}

// check panics with ErrStaleHandle if the lease has expired.
func (l lease) check() {
	if !l.live() {
		panic(ErrStaleHandle)
	}
}

func (l lease) runtime() Runtime {
	l.check()
	return l.owner.rt
}
