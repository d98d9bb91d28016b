package ordmap

// DefaultDegree is the B-tree degree used when no WithDegree option is given.
const DefaultDegree = 32

// BTreeOption configures a BTree.
type BTreeOption func(*btreeOptions)

type btreeOptions struct {
	degree int
}

// WithDegree sets the degree of a BTree. Nodes hold between degree-1 and
// 2*degree-1 entries, the root excepted.
func WithDegree(degree int) BTreeOption {
	return func(o *btreeOptions) {
		o.degree = degree
	}
}
