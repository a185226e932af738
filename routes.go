package showcase

import (
	"github.com/labstack/echo/v4"
)

func (a *App) setupRoutes() {
	e := a.Echo

	// Assets shipped with the module, then the site's own static files.
	e.StaticFS("/assets", echo.MustSubFS(EmbeddedAssets, "embedded"))
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/pricing/", a.handlePricing)
	e.GET("/about/", a.handleAbout)
	e.GET("/case-studies/", a.handleCaseStudies)
	e.GET("/case-studies/:id/", a.handleCaseStudy)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:id/", a.handleBlogPost)
	e.GET("/contact/", a.handleContactPage)
	e.POST("/contact/", a.handleContactSubmit)

	// JSON API
	api := e.Group("/api")
	api.GET("/case-studies", a.apiCaseStudies)
	api.GET("/case-studies/:id", a.apiCaseStudy)
	api.GET("/blog-posts", a.apiBlogPosts)
	api.GET("/blog-posts/:id", a.apiBlogPost)
	api.POST("/contact", a.apiContact)
	api.GET("/health", a.apiHealth)

	// Admin: the session is restored for every admin request, the guard
	// only wraps the protected pages.
	admin := e.Group("/admin", a.withSession)
	admin.GET("/login/", a.handleLoginPage)
	admin.POST("/login/", a.handleLogin)
	admin.GET("/signup/", a.handleSignUpPage)
	admin.POST("/signup/", a.handleSignUp)
	admin.GET("/verify/", a.handleVerify)
	admin.POST("/logout/", a.handleLogout)

	guarded := admin.Group("", a.requireActor)
	guarded.GET("/", a.handleDashboard)
	guarded.GET("/traffic.json", a.handleTraffic)

	guarded.GET("/case-studies/new/", a.handleNewCaseStudy)
	guarded.POST("/case-studies/", a.handleCreateCaseStudy)
	guarded.GET("/case-studies/:id/edit/", a.handleEditCaseStudy)
	guarded.POST("/case-studies/:id/", a.handleUpdateCaseStudy)
	guarded.POST("/case-studies/:id/delete/", a.handleDeleteCaseStudy)
	guarded.DELETE("/case-studies/:id/", a.handleDeleteCaseStudy)

	guarded.GET("/blog-posts/new/", a.handleNewBlogPost)
	guarded.POST("/blog-posts/", a.handleCreateBlogPost)
	guarded.GET("/blog-posts/:id/edit/", a.handleEditBlogPost)
	guarded.POST("/blog-posts/:id/", a.handleUpdateBlogPost)
	guarded.POST("/blog-posts/:id/delete/", a.handleDeleteBlogPost)
	guarded.DELETE("/blog-posts/:id/", a.handleDeleteBlogPost)

	guarded.GET("/contacts/", a.handleContacts)
	guarded.POST("/contacts/:id/delete/", a.handleDeleteContact)
	guarded.DELETE("/contacts/:id/", a.handleDeleteContact)

	guarded.GET("/images/", a.handleImages)
	guarded.POST("/images/", a.handleImageUpload)
	guarded.POST("/images/:filename/delete/", a.handleImageDelete)
	guarded.DELETE("/images/:filename/", a.handleImageDelete)
}
