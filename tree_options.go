package hamtrie

// Option is a functional option for configuring a Tree.
type Option func(*treeConfig)

type treeConfig struct {
	ensureConsistency bool
}

func defaultTreeConfig() *treeConfig {
	return &treeConfig{}
}

// WithAlgorithmConsistency makes the tree record the algorithm id of the
// first inserted hash and reject every later Insert or Search whose hash
// carries a different id. Without this option hashes of any origin mix
// freely and the caller is responsible for not comparing apples to oranges.
func WithAlgorithmConsistency() Option {
	return func(c *treeConfig) {
		c.ensureConsistency = true
	}
}
