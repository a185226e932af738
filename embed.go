package showcase

import "embed"

// EmbeddedAssets contains the static assets shipped with the module and
// served under /assets/: site.css and admin.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
