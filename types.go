package showcase

import (
	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/content"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	SiteName    string
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string // optional structured data
}

// NoticeKind selects how a Notice is styled.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a non-blocking message shown above page content.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func (n Notice) Empty() bool { return n.Message == "" }

// ListState tells a list page whether it has content, has none yet, or
// could not load. The last two are rendered differently.
type ListState int

const (
	ListReady ListState = iota
	ListEmpty
	ListFailed
)

func listState(n int, failed bool) ListState {
	switch {
	case failed:
		return ListFailed
	case n == 0:
		return ListEmpty
	}
	return ListReady
}

type HomePage struct {
	Meta        PageMeta
	Notice      Notice
	CaseStudies []content.CaseStudy // newest few
	Posts       []content.BlogPost  // newest few
}

// PricingPlan is one tier on the pricing page.
type PricingPlan struct {
	Name        string
	Price       string
	Description string
	Features    []string
	Highlighted bool
}

type PricingPage struct {
	Meta  PageMeta
	Plans []PricingPlan
}

type AboutPage struct {
	Meta PageMeta
}

// CaseStudyListPage is the filtered portfolio list.
type CaseStudyListPage struct {
	Meta       PageMeta
	Notice     Notice
	State      ListState
	Items      []content.CaseStudy
	Total      int // before filtering
	Criteria   content.Criteria
	Categories []string
	Tags       []string
}

type CaseStudyPage struct {
	Meta    PageMeta
	Study   content.CaseStudy
	Body    string // sanitized HTML
	Related []content.CaseStudy
}

type BlogListPage struct {
	Meta     PageMeta
	Notice   Notice
	State    ListState
	Posts    []content.BlogPost
	Total    int
	Criteria content.Criteria
	Tags     []string
}

type BlogPostPage struct {
	Meta    PageMeta
	Post    content.BlogPost
	Body    string // sanitized HTML
	Related []content.BlogPost
}

// ContactPage is the public contact form. On a failed submit Form keeps
// what the visitor typed.
type ContactPage struct {
	Meta         PageMeta
	Notice       Notice
	CSRF         string
	Form         content.ContactForm
	Errors       map[string]string
	Sent         bool
	ProjectTypes []content.ProjectType
	Budgets      []content.Budget
	Timelines    []content.Timeline
	Referrals    []content.Referral
}

// AdminLoginPage is what the route guard renders for an unauthenticated
// visitor.
type AdminLoginPage struct {
	Meta        PageMeta
	Notice      Notice
	CSRF        string
	Email       string
	AllowSignUp bool
	SignUp      bool // show the sign-up form instead of sign-in
}

type AdminDashboardPage struct {
	Meta        PageMeta
	Notice      Notice
	CSRF        string
	Actor       auth.Actor
	CaseStudies []content.CaseStudy
	Posts       []content.BlogPost
	Contacts    int
	// Traffic is nil when analytics are off or could not be loaded.
	Traffic *analytics.Summary
}

// CaseStudyFormPage renders the create/edit form. ID is empty when
// creating.
type CaseStudyFormPage struct {
	Meta       PageMeta
	Notice     Notice
	CSRF       string
	ID         string
	Form       content.CaseStudyForm
	Errors     map[string]string
	Categories []content.Category
}

type BlogPostFormPage struct {
	Meta   PageMeta
	Notice Notice
	CSRF   string
	ID     string
	Form   content.BlogPostForm
	Errors map[string]string
}

type ContactsPage struct {
	Meta        PageMeta
	Notice      Notice
	CSRF        string
	Submissions []content.ContactSubmission
}

type ImagesPage struct {
	Meta   PageMeta
	Notice Notice
	CSRF   string
	Images []content.Image
}
