package aov

// Classifier resolves variance channels against an injected Table.
type Classifier struct {
	table Table
}

// NewClassifier returns a Classifier backed by t.
func NewClassifier(t Table) *Classifier {
	return &Classifier{table: t}
}

// Classify returns the variance channel to pair with name. It is total:
// unknown and empty names fall through to the generic "mse" channel.
func (c *Classifier) Classify(name string) string {
	return c.table.lookup(name).Variance
}

// Category reports which rule family name falls into.
func (c *Classifier) Category(name string) Category {
	return c.table.lookup(name).Category
}

// ClassifyAll classifies names in order; the result is index-aligned.
func (c *Classifier) ClassifyAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = c.Classify(n)
	}
	return out
}
