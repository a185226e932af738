package content

import "strings"

// The enumerations below are closed: parsing never invents a value. Input
// that matches no known value or label parses to the type's Other variant,
// so new labels typed into a form are kept as "Other" instead of vanishing.

type option struct {
	value string
	label string
}

func parseOption(s string, opts []option, other string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, o := range opts {
		if strings.EqualFold(s, o.value) || strings.EqualFold(s, o.label) {
			return o.value
		}
	}
	return other
}

func labelOf(v string, opts []option) string {
	for _, o := range opts {
		if o.value == v {
			return o.label
		}
	}
	return v
}

// Category classifies a case study.
type Category string

const (
	CategoryWebDevelopment Category = "Web Development"
	CategoryEcommerce      Category = "E-commerce"
	CategoryMobileApp      Category = "Mobile App"
	CategoryDesign         Category = "UI/UX Design"
	CategoryBranding       Category = "Branding"
	CategorySaaS           Category = "SaaS"
	CategoryOther          Category = "Other"
)

var categoryOptions = []option{
	{string(CategoryWebDevelopment), "Web Development"},
	{string(CategoryEcommerce), "E-commerce"},
	{string(CategoryMobileApp), "Mobile App"},
	{string(CategoryDesign), "UI/UX Design"},
	{string(CategoryBranding), "Branding"},
	{string(CategorySaaS), "SaaS"},
	{string(CategoryOther), "Other"},
}

func ParseCategory(s string) Category { return Category(parseOption(s, categoryOptions, string(CategoryOther))) }
func (c Category) Label() string { return labelOf(string(c), categoryOptions) }

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOptions))
	for i, o := range categoryOptions {
		out[i] = Category(o.value)
	}
	return out
}

// ProjectType is what a contact wants built.
type ProjectType string

const (
	ProjectWebsite   ProjectType = "website"
	ProjectWebApp    ProjectType = "web-app"
	ProjectEcommerce ProjectType = "e-commerce"
	ProjectMobileApp ProjectType = "mobile-app"
	ProjectRedesign  ProjectType = "redesign"
	ProjectOther     ProjectType = "other"
)

var projectTypeOptions = []option{
	{string(ProjectWebsite), "Marketing website"},
	{string(ProjectWebApp), "Web application"},
	{string(ProjectEcommerce), "E-commerce store"},
	{string(ProjectMobileApp), "Mobile app"},
	{string(ProjectRedesign), "Redesign"},
	{string(ProjectOther), "Other"},
}

func ParseProjectType(s string) ProjectType {
	return ProjectType(parseOption(s, projectTypeOptions, string(ProjectOther)))
}
func (p ProjectType) Label() string { return labelOf(string(p), projectTypeOptions) }

func ProjectTypes() []ProjectType {
	out := make([]ProjectType, len(projectTypeOptions))
	for i, o := range projectTypeOptions {
		out[i] = ProjectType(o.value)
	}
	return out
}

// Budget is the contact's budget bracket.
type Budget string

const (
	BudgetUnder5k Budget = "under-5k"
	Budget5to10k  Budget = "5k-10k"
	Budget10to25k Budget = "10k-25k"
	Budget25to50k Budget = "25k-50k"
	BudgetOver50k Budget = "50k-plus"
	BudgetOther   Budget = "other"
)

var budgetOptions = []option{
	{string(BudgetUnder5k), "Under $5k"},
	{string(Budget5to10k), "$5k - $10k"},
	{string(Budget10to25k), "$10k - $25k"},
	{string(Budget25to50k), "$25k - $50k"},
	{string(BudgetOver50k), "$50k+"},
	{string(BudgetOther), "Not sure yet"},
}

func ParseBudget(s string) Budget { return Budget(parseOption(s, budgetOptions, string(BudgetOther))) }
func (b Budget) Label() string { return labelOf(string(b), budgetOptions) }

func Budgets() []Budget {
	out := make([]Budget, len(budgetOptions))
	for i, o := range budgetOptions {
		out[i] = Budget(o.value)
	}
	return out
}

// Timeline is when the contact wants to start.
type Timeline string

const (
	TimelineASAP     Timeline = "asap"
	TimelineOneMonth Timeline = "1-month"
	TimelineQuarter  Timeline = "1-3-months"
	TimelineHalfYear Timeline = "3-6-months"
	TimelineFlexible Timeline = "flexible"
	TimelineOther    Timeline = "other"
)

var timelineOptions = []option{
	{string(TimelineASAP), "As soon as possible"},
	{string(TimelineOneMonth), "Within a month"},
	{string(TimelineQuarter), "1-3 months"},
	{string(TimelineHalfYear), "3-6 months"},
	{string(TimelineFlexible), "Flexible"},
	{string(TimelineOther), "Other"},
}

func ParseTimeline(s string) Timeline { return Timeline(parseOption(s, timelineOptions, string(TimelineOther))) }
func (t Timeline) Label() string { return labelOf(string(t), timelineOptions) }

func Timelines() []Timeline {
	out := make([]Timeline, len(timelineOptions))
	for i, o := range timelineOptions {
		out[i] = Timeline(o.value)
	}
	return out
}

// Referral is how the contact heard about the studio.
type Referral string

const (
	ReferralSearch    Referral = "search"
	ReferralSocial    Referral = "social-media"
	ReferralFriend    Referral = "referral"
	ReferralPortfolio Referral = "portfolio"
	ReferralOther     Referral = "other"
)

var referralOptions = []option{
	{string(ReferralSearch), "Search engine"},
	{string(ReferralSocial), "Social media"},
	{string(ReferralFriend), "Friend or colleague"},
	{string(ReferralPortfolio), "Portfolio site"},
	{string(ReferralOther), "Other"},
}

func ParseReferral(s string) Referral { return Referral(parseOption(s, referralOptions, string(ReferralOther))) }
func (r Referral) Label() string { return labelOf(string(r), referralOptions) }

func Referrals() []Referral {
	out := make([]Referral, len(referralOptions))
	for i, o := range referralOptions {
		out[i] = Referral(o.value)
	}
	return out
}
