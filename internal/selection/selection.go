// Package selection holds the channel checklist: an ordered list of
// (name, selected) pairs that the interactive selector renders and the
// command-line flags populate.
package selection

import "strings"

// Item is one row of the checklist.
type Item struct {
	Name     string
	Selected bool
}

// Checklist is an ordered set of channel rows. Order is the discovery order
// and is preserved in every result.
type Checklist struct {
	items []Item
}

// New returns a checklist with every name unselected.
func New(names []string) *Checklist {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = Item{Name: n}
	}
	return &Checklist{items: items}
}

// Len returns the number of rows.
func (c *Checklist) Len() int { return len(c.items) }

// Items returns a copy of the rows.
func (c *Checklist) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Toggle flips row i. Out-of-range indices are ignored.
func (c *Checklist) Toggle(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items[i].Selected = !c.items[i].Selected
}

// SetAll selects or clears every row.
func (c *Checklist) SetAll(selected bool) {
	for i := range c.items {
		c.items[i].Selected = selected
	}
}

// Apply selects every row whose name appears in names and returns the
// requested names that are not in the checklist. Matching is exact.
func (c *Checklist) Apply(names []string) (unknown []string) {
	index := make(map[string][]int, len(c.items))
	for i, it := range c.items {
		index[it.Name] = append(index[it.Name], i)
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		rows, ok := index[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		for _, i := range rows {
			c.items[i].Selected = true
		}
	}
	return unknown
}

// Selected returns the selected names in checklist order.
func (c *Checklist) Selected() []string {
	var out []string
	for _, it := range c.items {
		if it.Selected {
			out = append(out, it.Name)
		}
	}
	return out
}

// Count returns how many rows are selected.
func (c *Checklist) Count() int {
	n := 0
	for _, it := range c.items {
		if it.Selected {
			n++
		}
	}
	return n
}
