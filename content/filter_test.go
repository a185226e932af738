package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var fixtureStudies = []CaseStudy{
	{ID: "1", Title: "Coffee Shop", Description: "Online ordering for a roastery", Category: CategoryEcommerce, Tags: []string{"React", "Stripe"}},
	{ID: "2", Title: "Fitness Tracker", Description: "Workout logging app", Category: CategoryMobileApp, Tags: []string{"Flutter"}},
	{ID: "3", Title: "Bookstore", Description: "Marketplace with REACT frontend", Category: CategoryEcommerce, Tags: []string{"Vue"}},
	{ID: "4", Title: "Agency Site", Description: "Brand refresh", Category: CategoryBranding, Tags: []string{"React", "Figma"}},
}

func ids[T interface{ CaseStudy | BlogPost }](items []T) []string {
	out := []string{}
	for _, item := range items {
		switch v := any(item).(type) {
		case CaseStudy:
			out = append(out, v.ID)
		case BlogPost:
			out = append(out, v.ID)
		}
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"no criteria", Criteria{}, []string{"1", "2", "3", "4"}},
		{"all is reserved", Criteria{Category: All, Tag: All}, []string{"1", "2", "3", "4"}},
		{"category", Criteria{Category: "E-commerce"}, []string{"1", "3"}},
		{"category is exact", Criteria{Category: "e-commerce"}, []string{}},
		{"tag", Criteria{Tag: "React"}, []string{"1", "4"}},
		{"search title", Criteria{Search: "coffee"}, []string{"1"}},
		{"search secondary text", Criteria{Search: "react"}, []string{"3"}},
		{"blank search", Criteria{Search: "   "}, []string{"1", "2", "3", "4"}},
		{"composed", Criteria{Category: "E-commerce", Tag: "React"}, []string{"1"}},
		{"no match", Criteria{Category: "SaaS"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(fixtureStudies, tt.c))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%+v) mismatch (-want +got):\n%s", tt.c, diff)
			}
		})
	}
}

func TestFilterComposes(t *testing.T) {
	criteria := []Criteria{
		{Category: "E-commerce"},
		{Tag: "React"},
		{Search: "o"},
		{},
		{Category: All},
	}
	for _, a := range criteria {
		for _, b := range criteria {
			seq := Filter(Filter(fixtureStudies, a), b)
			pa := And(ByCategory[CaseStudy](a.Category), ByTag[CaseStudy](a.Tag), BySearch[CaseStudy](a.Search))
			pb := And(ByCategory[CaseStudy](b.Category), ByTag[CaseStudy](b.Tag), BySearch[CaseStudy](b.Search))
			both := Select(fixtureStudies, And(pa, pb))
			if diff := cmp.Diff(ids(both), ids(seq)); diff != "" {
				t.Errorf("filter(filter(C, %+v), %+v) != filter(C, both):\n%s", a, b, diff)
			}
			swapped := Filter(Filter(fixtureStudies, b), a)
			if diff := cmp.Diff(ids(seq), ids(swapped)); diff != "" {
				t.Errorf("filter order matters for %+v and %+v:\n%s", a, b, diff)
			}
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	before := ids(fixtureStudies)
	_ = Filter(fixtureStudies, Criteria{Tag: "Flutter"})
	if diff := cmp.Diff(before, ids(fixtureStudies)); diff != "" {
		t.Errorf("input changed:\n%s", diff)
	}
}

func TestFilterBlogPosts(t *testing.T) {
	posts := []BlogPost{
		{ID: "a", Title: "Why Go", Excerpt: "Simple tools", Tags: []string{"go"}},
		{ID: "b", Title: "Templ tips", Excerpt: "Components in GO", Tags: []string{"templ", "go"}},
		{ID: "c", Title: "CSS", Excerpt: "Grid", Tags: []string{"css"}},
	}
	if got := ids(Filter(posts, Criteria{Search: "go"})); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("search = %v", got)
	}
	if got := ids(Filter(posts, Criteria{Tag: "go", Search: "templ"})); !cmp.Equal(got, []string{"b"}) {
		t.Errorf("tag+search = %v", got)
	}
	// Posts have no category, so a category filter removes everything.
	if got := ids(Filter(posts, Criteria{Category: "Web Development"})); len(got) != 0 {
		t.Errorf("category on posts = %v", got)
	}
}

func TestDistinct(t *testing.T) {
	if got := DistinctCategories(fixtureStudies); !cmp.Equal(got, []string{"E-commerce", "Mobile App", "Branding"}) {
		t.Errorf("DistinctCategories = %v", got)
	}
	if got := DistinctTags(fixtureStudies); !cmp.Equal(got, []string{"React", "Stripe", "Flutter", "Vue", "Figma"}) {
		t.Errorf("DistinctTags = %v", got)
	}
	if got := DistinctTags([]CaseStudy{}); len(got) != 0 {
		t.Errorf("DistinctTags(empty) = %v", got)
	}
}

func TestRelated(t *testing.T) {
	posts := []BlogPost{
		{ID: "a", Tags: []string{"Go"}},
		{ID: "b", Tags: []string{"go", "web"}},
		{ID: "c", Tags: []string{"css"}},
		{ID: "d", Tags: []string{"web"}},
	}
	got := ids(Related(posts[0], posts, 3))
	if !cmp.Equal(got, []string{"b"}) {
		t.Errorf("Related = %v", got)
	}
	got = ids(Related(posts[1], posts, 1))
	if !cmp.Equal(got, []string{"a"}) {
		t.Errorf("Related with limit = %v", got)
	}
}
