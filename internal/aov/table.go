package aov

import "strings"

// Category names the family a channel belongs to.
type Category string

const (
	CategoryAlpha    Category = "alpha"
	CategoryNormal   Category = "normal"
	CategoryPosition Category = "position"
	CategoryDiffuse  Category = "diffuse"
	CategorySpecular Category = "specular"
	CategoryAlbedo   Category = "albedo"
	CategoryLPE      Category = "lpe"
	CategoryOther    Category = "other"
)

// Variance channel names written by the renderer.
const (
	VarianceGeneric  = "mse"
	VarianceDiffuse  = "diffuse_mse"
	VarianceSpecular = "specular_mse"
	VarianceAlbedo   = "albedo_mse"
	VarianceNormal   = "normal_mse"
)

// Rule matches a channel name to a category. A rule matches when the name
// contains Substring (compared case-insensitively if FoldCase is set) or
// equals one of Exact.
type Rule struct {
	Category  Category
	Substring string
	FoldCase  bool
	Exact     []string
	Variance  string
}

func (r Rule) matches(name string) bool {
	for _, e := range r.Exact {
		if name == e {
			return true
		}
	}
	if r.Substring == "" {
		return false
	}
	if r.FoldCase {
		return strings.Contains(strings.ToLower(name), strings.ToLower(r.Substring))
	}
	return strings.Contains(name, r.Substring)
}

// Table is an ordered, read-only rule list plus the fallback used when no
// rule matches. The zero value classifies everything as CategoryOther/"mse".
type Table struct {
	rules    []Rule
	fallback Rule
}

// NewTable copies rules into a Table. Order is priority: first match wins.
func NewTable(rules []Rule, fallback Rule) Table {
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		r.Exact = append([]string(nil), r.Exact...)
		cp[i] = r
	}
	return Table{rules: cp, fallback: fallback}
}

// DefaultTable returns the RenderMan denoiser pairing rules.
func DefaultTable() Table {
	return NewTable([]Rule{
		{Category: CategoryAlpha, Substring: "alpha", Exact: []string{"A", "a"}, Variance: VarianceGeneric},
		{Category: CategoryNormal, Substring: "normal", Exact: []string{"N"}, Variance: VarianceNormal},
		{Category: CategoryPosition, Substring: "position", Exact: []string{"P"}, Variance: VarianceGeneric},
		{Category: CategoryDiffuse, Substring: "diffuse", Variance: VarianceDiffuse},
		{Category: CategorySpecular, Substring: "specular", Variance: VarianceSpecular},
		{Category: CategoryAlbedo, Substring: "albedo", Variance: VarianceAlbedo},
		{Category: CategoryLPE, Substring: "lpe", FoldCase: true, Variance: VarianceGeneric},
	}, Rule{Category: CategoryOther, Variance: VarianceGeneric})
}

// Rules returns a copy of the table's rules in priority order.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		r.Exact = append([]string(nil), r.Exact...)
		out[i] = r
	}
	return out
}

func (t Table) lookup(name string) Rule {
	for _, r := range t.rules {
		if r.matches(name) {
			return r
		}
	}
	if t.fallback.Variance == "" {
		return Rule{Category: CategoryOther, Variance: VarianceGeneric}
	}
	return t.fallback
}
