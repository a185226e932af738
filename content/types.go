// Package content stores and presents the site's case studies, blog posts,
// contact submissions and uploaded images.
package content

import "time"

// CaseStudy is a portfolio entry. ID and CreatedAt are assigned by the store.
type CaseStudy struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"required,notblank"`
	Description   string    `json:"description" validate:"required,notblank"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	OriginalImage string    `json:"original_image,omitempty"`
	Category      Category  `json:"category" validate:"required"`
	LiveURL       string    `json:"live_url,omitempty" validate:"omitempty,url"`
	Tags          []string  `json:"tags"`
	Content       string    `json:"content,omitempty"`
	Client        string    `json:"client,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Results       []string  `json:"results,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CaseStudyPatch carries the fields of an update. Nil fields are left as
// stored.
type CaseStudyPatch struct {
	Title         *string
	Description   *string
	Thumbnail     *string
	OriginalImage *string
	Category      *Category
	LiveURL       *string
	Tags          *[]string
	Content       *string
	Client        *string
	Duration      *string
	Results       *[]string
}

func (p CaseStudyPatch) apply(cs *CaseStudy) {
	setString(&cs.Title, p.Title)
	setString(&cs.Description, p.Description)
	setString(&cs.Thumbnail, p.Thumbnail)
	setString(&cs.OriginalImage, p.OriginalImage)
	if p.Category != nil {
		cs.Category = *p.Category
	}
	setString(&cs.LiveURL, p.LiveURL)
	setList(&cs.Tags, p.Tags)
	setString(&cs.Content, p.Content)
	setString(&cs.Client, p.Client)
	setString(&cs.Duration, p.Duration)
	setList(&cs.Results, p.Results)
}

// BlogPost is an article. Only published posts are visible publicly.
type BlogPost struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"required,notblank"`
	Excerpt       string    `json:"excerpt" validate:"required,notblank"`
	Content       string    `json:"content" validate:"required,notblank"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
}

// BlogPostPatch carries the fields of an update.
type BlogPostPatch struct {
	Title         *string
	Excerpt       *string
	Content       *string
	Author        *string
	Tags          *[]string
	FeaturedImage *string
	Published     *bool
}

func (p BlogPostPatch) apply(bp *BlogPost) {
	setString(&bp.Title, p.Title)
	setString(&bp.Excerpt, p.Excerpt)
	setString(&bp.Content, p.Content)
	setString(&bp.Author, p.Author)
	setList(&bp.Tags, p.Tags)
	setString(&bp.FeaturedImage, p.FeaturedImage)
	if p.Published != nil {
		bp.Published = *p.Published
	}
}

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required,notblank"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone,omitempty"`
	Company     string      `json:"company,omitempty"`
	ProjectType ProjectType `json:"project_type,omitempty"`
	Budget      Budget      `json:"budget,omitempty"`
	Timeline    Timeline    `json:"timeline,omitempty"`
	Message     string      `json:"message" validate:"required,notblank"`
	Referral    Referral    `json:"referral,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Image is an uploaded, resized picture served from the uploads directory.
type Image struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Size         int       `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// URL is the public path of the image.
func (i Image) URL() string {
	return "/public/uploads/" + i.Filename
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string{}, (*v)...)
	}
}
