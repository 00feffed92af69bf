package shopping

import "strings"

// ItemFilter narrows the shopping list the way the list view's search bar and
// tag bar do. The zero value matches everything.
type ItemFilter struct {
	Search   string
	Category Category
}

func (f ItemFilter) matches(item ShoppingItem) bool {
	if f.Category != "" && f.Category != CategoryAll && item.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Search))
}

// Summary holds the counters shown above the list.
type Summary struct {
	Total      int              `json:"total"`
	Checked    int              `json:"checked"`
	Unchecked  int              `json:"unchecked"`
	ByCategory map[Category]int `json:"by_category"`
}

// Filter returns the items matching f, in list order.
func (e *Engine) Filter(f ItemFilter) []ShoppingItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ShoppingItem
	for _, item := range e.items.Items() {
		if f.matches(item) {
			out = append(out, item.clone())
		}
	}
	return out
}

// Summary counts the items of the whole list. ByCategory[CategoryAll] is the
// total, mirroring the "Alle" tag.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Summary{ByCategory: make(map[Category]int, len(displayOrder))}
	for _, c := range displayOrder {
		s.ByCategory[c] = 0
	}
	for _, item := range e.items.Items() {
		s.Total++
		if item.Checked {
			s.Checked++
		}
		if item.Category != CategoryAll {
			s.ByCategory[item.Category]++
		}
	}
	s.Unchecked = s.Total - s.Checked
	s.ByCategory[CategoryAll] = s.Total
	return s
}
