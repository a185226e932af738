package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"React, TypeScript,  Tailwind CSS", []string{"React", "TypeScript", "Tailwind CSS"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"Go,,Templ ,", []string{"Go", "Templ"}},
		{"b, a, b", []string{"b", "a", "b"}},
	}
	for _, tt := range tests {
		got := SplitTags(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SplitTags(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSplitResults(t *testing.T) {
	got := SplitResults("Faster checkout\r\n\n  +30% revenue \n")
	want := []string{"Faster checkout", "+30% revenue"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitResults mismatch (-want +got):\n%s", diff)
	}
}

func TestListRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"one"},
		{"React", "TypeScript", "Tailwind CSS"},
		{"dup", "dup"},
		{"with space", "x y z"},
	}
	for _, tags := range lists {
		if got := SplitTags(JoinTags(tags)); !cmp.Equal(tags, got) {
			t.Errorf("SplitTags(JoinTags(%q)) = %q", tags, got)
		}
		if got := SplitResults(JoinResults(tags)); !cmp.Equal(tags, got) {
			t.Errorf("SplitResults(JoinResults(%q)) = %q", tags, got)
		}
	}
	results := []string{"Cut load time by half, site-wide", "Doubled signups"}
	if got := SplitResults(JoinResults(results)); !cmp.Equal(results, got) {
		t.Errorf("results with commas = %q", got)
	}
}

func TestCaseStudyFormRoundTrip(t *testing.T) {
	cs := CaseStudy{
		Title:       "Storefront",
		Description: "Headless shop",
		Category:    CategorySaaS,
		LiveURL:     "https://example.com",
		Tags:        []string{"Go", "HTMX"},
		Results:     []string{"Fast", "Cheap"},
	}
	form := CaseStudyFormFrom(cs)
	assert.Equal(t, "Go, HTMX", form.Tags)
	assert.Equal(t, "Fast\nCheap", form.Results)
	if diff := cmp.Diff(cs, form.CaseStudy()); diff != "" {
		t.Errorf("form round trip mismatch (-want +got):\n%s", diff)
	}

	patch := form.Patch()
	var target CaseStudy
	patch.apply(&target)
	if diff := cmp.Diff(cs, target); diff != "" {
		t.Errorf("patch apply mismatch (-want +got):\n%s", diff)
	}
}

func TestBlogPostForm(t *testing.T) {
	f := BlogPostForm{Title: " Hello ", Excerpt: "e", Content: "c", Tags: "a, b", Published: "on"}
	bp := f.BlogPost()
	assert.Equal(t, "Hello", bp.Title)
	assert.True(t, bp.Published)
	assert.Equal(t, []string{"a", "b"}, bp.Tags)

	f.Published = ""
	p := f.Patch()
	if assert.NotNil(t, p.Published) {
		assert.False(t, *p.Published)
	}

	back := BlogPostFormFrom(BlogPost{Published: true, Tags: []string{"x"}})
	assert.True(t, back.IsPublished())
	assert.Equal(t, "x", back.Tags)
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, CategoryEcommerce, ParseCategory("e-commerce"))
	assert.Equal(t, CategoryOther, ParseCategory("Blockchain"))
	assert.Equal(t, Category(""), ParseCategory("  "))

	assert.Equal(t, ProjectWebApp, ParseProjectType("Web application"))
	assert.Equal(t, BudgetOver50k, ParseBudget("50k-plus"))
	assert.Equal(t, BudgetOther, ParseBudget("one million"))
	assert.Equal(t, TimelineFlexible, ParseTimeline("FLEXIBLE"))
	assert.Equal(t, ReferralSocial, ParseReferral("Social media"))

	assert.Equal(t, "$50k+", BudgetOver50k.Label())
	assert.Equal(t, "legacy-value", Budget("legacy-value").Label())
	assert.Len(t, Categories(), 7)
	assert.Equal(t, ProjectWebsite, ProjectTypes()[0])
}

func TestContactFormHoneypot(t *testing.T) {
	assert.False(t, ContactForm{Name: "Ada"}.IsSpam())
	assert.True(t, ContactForm{Website: "http://spam.example"}.IsSpam())
}
