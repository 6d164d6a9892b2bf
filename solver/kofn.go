package solver

import "github.com/panyam/ramtool/core"

const (
	kofnKMessage     = "k-of-n requires an integer k >= 1."
	kofnBoundMessage = "k-of-n requires 1 <= k <= n."
)

// ResolveKofN validates k and n of a k-of-n structure.  n defaults to
// fallbackN (the number of active components).  Both solvers go through
// this so k/n semantics never drift between reliability and availability.
func ResolveKofN(s KofN, fallbackN int) (k, n int, err error) {
	if s.K == nil {
		return 0, 0, core.NewRamError(kofnKMessage)
	}
	if k, err = core.EnsureIntegerInRange(s.K, kofnKMessage, core.AtLeast(1)); err != nil {
		return 0, 0, err
	}
	rawN := fallbackN
	if s.N != nil {
		rawN = *s.N
	}
	if n, err = core.EnsureIntegerInRange(&rawN, kofnBoundMessage, core.AtLeast(1)); err != nil {
		return 0, 0, err
	}
	if k < 1 || k > n {
		return 0, 0, core.NewRamError(kofnBoundMessage)
	}
	return k, n, nil
}
