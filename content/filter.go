package content

import (
	"strings"

	"golang.org/x/text/cases"
)

// All is the reserved category/tag value meaning "no filtering".
const All = "All"

// Filterable is implemented by entities the list pages can narrow down.
type Filterable interface {
	FilterCategory() string
	FilterTags() []string
	// SearchText returns the title and the secondary text searched by
	// BySearch.
	SearchText() (title, secondary string)
}

func (cs CaseStudy) FilterCategory() string { return string(cs.Category) }
func (cs CaseStudy) FilterTags() []string { return cs.Tags }
func (cs CaseStudy) SearchText() (string, string) { return cs.Title, cs.Description }
func (bp BlogPost) FilterCategory() string { return "" }
func (bp BlogPost) FilterTags() []string { return bp.Tags }
func (bp BlogPost) SearchText() (string, string) { return bp.Title, bp.Excerpt }

// Predicate decides whether an item stays in a filtered list.
type Predicate[T Filterable] func(T) bool

// Criteria is the set of list filters taken from the query string.
type Criteria struct {
	Category string
	Tag      string
	Search   string
}

// Active reports whether any filter narrows the list.
func (c Criteria) Active() bool {
	return !isAll(c.Category) || !isAll(c.Tag) || strings.TrimSpace(c.Search) != ""
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// ByCategory keeps items whose category equals category exactly.
func ByCategory[T Filterable](category string) Predicate[T] {
	if isAll(category) {
		return nil
	}
	category = strings.TrimSpace(category)
	return func(item T) bool {
		return item.FilterCategory() == category
	}
}

// ByTag keeps items whose tags contain tag.
func ByTag[T Filterable](tag string) Predicate[T] {
	if isAll(tag) {
		return nil
	}
	tag = strings.TrimSpace(tag)
	return func(item T) bool {
		for _, t := range item.FilterTags() {
			if t == tag {
				return true
			}
		}
		return false
	}
}

// BySearch keeps items whose title or secondary text contains term,
// ignoring case.
func BySearch[T Filterable](term string) Predicate[T] {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return func(item T) bool {
		title, secondary := item.SearchText()
		return strings.Contains(fold.String(title), needle) ||
			strings.Contains(fold.String(secondary), needle)
	}
}

// And combines predicates; nil predicates are skipped.
func And[T Filterable](ps ...Predicate[T]) Predicate[T] {
	var active []Predicate[T]
	for _, p := range ps {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(item T) bool {
		for _, p := range active {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Select returns the items matching p in their original order. A nil p
// keeps everything. items is never modified.
func Select[T Filterable](items []T, p Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p == nil || p(item) {
			out = append(out, item)
		}
	}
	return out
}

// Filter applies every criterion in c.
func Filter[T Filterable](items []T, c Criteria) []T {
	return Select(items, And(ByCategory[T](c.Category), ByTag[T](c.Tag), BySearch[T](c.Search)))
}

// DistinctCategories returns the categories present in items in first-seen
// order.
func DistinctCategories[T Filterable](items []T) []string {
	return distinct(items, func(item T) []string {
		if c := item.FilterCategory(); c != "" {
			return []string{c}
		}
		return nil
	})
}

// DistinctTags returns the tags present in items in first-seen order.
func DistinctTags[T Filterable](items []T) []string {
	return distinct(items, func(item T) []string { return item.FilterTags() })
}

func distinct[T any](items []T, values func(T) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		for _, v := range values(item) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Related finds posts that share at least one tag with current.
func Related(current BlogPost, posts []BlogPost, limit int) []BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[strings.ToLower(t)]; ok {
				related = append(related, p)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}
