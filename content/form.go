package content

import "strings"

// SplitList splits s on sep, trims every segment and drops the empty ones.
// Order is preserved and the result is never nil.
func SplitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitTags parses the comma separated tags input of the admin forms.
func SplitTags(s string) []string { return SplitList(s, ",") }

// SplitResults parses the one-per-line results input.
func SplitResults(s string) []string { return SplitList(s, "\n") }

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string { return strings.Join(tags, ", ") }

// JoinResults is the inverse of SplitResults.
func JoinResults(results []string) string { return strings.Join(results, "\n") }

// CaseStudyForm is the admin edit form for a case study as posted by the
// browser.
type CaseStudyForm struct {
	Title         string `form:"title"`
	Description   string `form:"description"`
	Thumbnail     string `form:"thumbnail"`
	OriginalImage string `form:"original_image"`
	Category      string `form:"category"`
	LiveURL       string `form:"live_url"`
	Tags          string `form:"tags"`
	Content       string `form:"content"`
	Client        string `form:"client"`
	Duration      string `form:"duration"`
	Results       string `form:"results"`
}

// CaseStudyFormFrom fills the form for editing cs.
func CaseStudyFormFrom(cs CaseStudy) CaseStudyForm {
	return CaseStudyForm{
		Title:         cs.Title,
		Description:   cs.Description,
		Thumbnail:     cs.Thumbnail,
		OriginalImage: cs.OriginalImage,
		Category:      string(cs.Category),
		LiveURL:       cs.LiveURL,
		Tags:          JoinTags(cs.Tags),
		Content:       cs.Content,
		Client:        cs.Client,
		Duration:      cs.Duration,
		Results:       JoinResults(cs.Results),
	}
}

// CaseStudy converts the form into an entity ready for Create.
func (f CaseStudyForm) CaseStudy() CaseStudy {
	return CaseStudy{
		Title:         strings.TrimSpace(f.Title),
		Description:   strings.TrimSpace(f.Description),
		Thumbnail:     strings.TrimSpace(f.Thumbnail),
		OriginalImage: strings.TrimSpace(f.OriginalImage),
		Category:      ParseCategory(f.Category),
		LiveURL:       strings.TrimSpace(f.LiveURL),
		Tags:          SplitTags(f.Tags),
		Content:       f.Content,
		Client:        strings.TrimSpace(f.Client),
		Duration:      strings.TrimSpace(f.Duration),
		Results:       SplitResults(f.Results),
	}
}

// Patch converts the form into a full update. Every field is sent since
// the form always posts all of them.
func (f CaseStudyForm) Patch() CaseStudyPatch {
	cs := f.CaseStudy()
	return CaseStudyPatch{
		Title:         &cs.Title,
		Description:   &cs.Description,
		Thumbnail:     &cs.Thumbnail,
		OriginalImage: &cs.OriginalImage,
		Category:      &cs.Category,
		LiveURL:       &cs.LiveURL,
		Tags:          &cs.Tags,
		Content:       &cs.Content,
		Client:        &cs.Client,
		Duration:      &cs.Duration,
		Results:       &cs.Results,
	}
}

// BlogPostForm is the admin edit form for a blog post.
type BlogPostForm struct {
	Title         string `form:"title"`
	Excerpt       string `form:"excerpt"`
	Content       string `form:"content"`
	Author        string `form:"author"`
	Tags          string `form:"tags"`
	FeaturedImage string `form:"featured_image"`
	// Published is a checkbox: any posted value means checked.
	Published string `form:"published"`
}

// BlogPostFormFrom fills the form for editing bp.
func BlogPostFormFrom(bp BlogPost) BlogPostForm {
	f := BlogPostForm{
		Title:         bp.Title,
		Excerpt:       bp.Excerpt,
		Content:       bp.Content,
		Author:        bp.Author,
		Tags:          JoinTags(bp.Tags),
		FeaturedImage: bp.FeaturedImage,
	}
	if bp.Published {
		f.Published = "on"
	}
	return f
}

func (f BlogPostForm) IsPublished() bool {
	return strings.TrimSpace(f.Published) != ""
}

// BlogPost converts the form into an entity ready for Create.
func (f BlogPostForm) BlogPost() BlogPost {
	return BlogPost{
		Title:         strings.TrimSpace(f.Title),
		Excerpt:       strings.TrimSpace(f.Excerpt),
		Content:       f.Content,
		Author:        strings.TrimSpace(f.Author),
		Tags:          SplitTags(f.Tags),
		FeaturedImage: strings.TrimSpace(f.FeaturedImage),
		Published:     f.IsPublished(),
	}
}

// Patch converts the form into a full update.
func (f BlogPostForm) Patch() BlogPostPatch {
	bp := f.BlogPost()
	return BlogPostPatch{
		Title:         &bp.Title,
		Excerpt:       &bp.Excerpt,
		Content:       &bp.Content,
		Author:        &bp.Author,
		Tags:          &bp.Tags,
		FeaturedImage: &bp.FeaturedImage,
		Published:     &bp.Published,
	}
}

// ContactForm is the public contact form, posted either as a form or as
// JSON to the API.
type ContactForm struct {
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	Phone       string `form:"phone" json:"phone"`
	Company     string `form:"company" json:"company"`
	ProjectType string `form:"project_type" json:"project_type"`
	Budget      string `form:"budget" json:"budget"`
	Timeline    string `form:"timeline" json:"timeline"`
	Message     string `form:"message" json:"message"`
	Referral    string `form:"referral" json:"referral"`
	// Website is a honeypot field. Humans leave it empty.
	Website string `form:"website" json:"website"`
}

// Submission converts the form into a submission ready for Create.
func (f ContactForm) Submission() ContactSubmission {
	return ContactSubmission{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Company:     strings.TrimSpace(f.Company),
		ProjectType: ParseProjectType(f.ProjectType),
		Budget:      ParseBudget(f.Budget),
		Timeline:    ParseTimeline(f.Timeline),
		Message:     strings.TrimSpace(f.Message),
		Referral:    ParseReferral(f.Referral),
	}
}

// IsSpam reports whether the honeypot was filled in.
func (f ContactForm) IsSpam() bool {
	return strings.TrimSpace(f.Website) != ""
}
