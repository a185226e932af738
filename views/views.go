// Package views is the default set of page components for a showcase App.
// Sites that want their own markup pass their own showcase.ViewFuncs and
// may reuse any of these.
package views

import "github.com/eringen/showcase"

// Default returns the built-in components for every page.
func Default() showcase.ViewFuncs {
	return showcase.ViewFuncs{
		Home:        home,
		Pricing:     pricing,
		About:       about,
		CaseStudies: caseStudies,
		CaseStudy:   caseStudy,
		Blog:        blog,
		BlogPost:    blogPost,
		Contact:     contact,

		AdminLogin:         adminLogin,
		AdminDashboard:     adminDashboard,
		AdminCaseStudyForm: adminCaseStudyForm,
		AdminBlogPostForm:  adminBlogPostForm,
		AdminContacts:      adminContacts,
		AdminImages:        adminImages,

		NotFound:    notFound,
		ServerError: serverError,
	}
}
