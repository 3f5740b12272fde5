package strata

// resolution tracks one top-level Get or CreateInstance call. It holds the
// tokens currently being built and every cache entry the call created, so a
// failed call can be undone.
type resolution struct {
	path    []pathEntry
	created []pathEntry
}

type pathEntry struct {
	owner *ResolvingInjector
	tok   Token
}

func newResolution() *resolution {
	return &resolution{}
}

// enter pushes tok built by owner onto the path. A token already being built
// by the same injector is a cycle.
func (r *resolution) enter(owner *ResolvingInjector, tok Token) error {
	for i, e := range r.path {
		if e.owner == owner && e.tok == tok {
			return ErrCircularDependency(r.chain(i, tok))
		}
	}

	r.path = append(r.path, pathEntry{owner: owner, tok: tok})

	return nil
}

func (r *resolution) leave() {
	r.path = r.path[:len(r.path)-1]
}

func (r *resolution) chain(from int, tok Token) []string {
	cycle := make([]string, 0, len(r.path)-from+1)
	for _, e := range r.path[from:] {
		cycle = append(cycle, tokenName(e.tok))
	}

	return append(cycle, tokenName(tok))
}

func (r *resolution) record(owner *ResolvingInjector, tok Token) {
	r.created = append(r.created, pathEntry{owner: owner, tok: tok})
}

// rollback evicts, newest first, every entry this resolution stored. An
// entry another call read in the meantime is evicted too, so that caller
// keeps an instance the cache no longer holds.
func (r *resolution) rollback() {
	for i := len(r.created) - 1; i >= 0; i-- {
		e := r.created[i]
		e.owner.evict(e.tok)
	}

	r.created = nil
}
