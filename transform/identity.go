package transform

// TreeIdentity reports whether a transform changed a tree. Transforms must
// return SameTree (and, as an implementation detail, the original node
// instance) whenever no descendant changed — this is how the fixed-point
// rule engine detects convergence cheaply, by comparing identity before
// falling back to a structural comparison.
type TreeIdentity bool

const (
	SameTree TreeIdentity = true
	NewTree  TreeIdentity = false
)

// and combines two TreeIdentity values: the result is SameTree only if
// both inputs are.
func and(a, b TreeIdentity) TreeIdentity {
	return a && b
}
