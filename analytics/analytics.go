// Package analytics records anonymous page views of the public site and
// summarizes them for the admin dashboard. No cookies are set and no IP
// address is stored: visitors are identified by a salted hash that rotates
// with the salt.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Visit is one recorded page view.
type Visit struct {
	VisitorID string
	Path      string
	Browser   string
	OS        string
	Device    string
	Referrer  string
	Time      time.Time
}

// BotVisit is a page view by a crawler. Bots are kept apart so they never
// inflate visitor counts.
type BotVisit struct {
	Bot  string
	Path string
	Time time.Time
}

// Count is a named tally in a Summary.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates visits between From and To.
type Summary struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Views          int       `json:"views"`
	UniqueVisitors int       `json:"unique_visitors"`
	BotVisits      int       `json:"bot_visits"`
	TopPages       []Count   `json:"top_pages"`
	Referrers      []Count   `json:"referrers"`
	Devices        []Count   `json:"devices"`
	Daily          []Count   `json:"daily"`
}

// Empty reports whether nothing was recorded in the period.
func (s Summary) Empty() bool { return s.Views == 0 && s.BotVisits == 0 }

type hasher struct{ salt string }

// visitorID derives an anonymous id from the client address and user agent.
func (h hasher) visitorID(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(h.salt + ip + "|" + userAgent))
	return hex.EncodeToString(sum[:8])
}

// ParseUserAgent classifies a User-Agent header into browser, OS and device.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// Edge and Opera also claim to be Chrome, and Chrome claims Safari.
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}
	return browser, os, device
}

// Checked in order; the generic markers come last.
var bots = []struct{ marker, name string }{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"duckduckbot", "DuckDuckBot"},
	{"yandex", "Yandex"},
	{"baiduspider", "Baidu"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"slackbot", "Slack"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"gptbot", "GPTBot"},
	{"crawler", "Other crawler"},
	{"spider", "Other crawler"},
	{"bot", "Other bot"},
}

// BotName returns the crawler named by ua, or "" for a browser. An empty
// user agent counts as a bot.
func BotName(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown"
	}
	ua = strings.ToLower(ua)
	for _, b := range bots {
		if strings.Contains(ua, b.marker) {
			return b.name
		}
	}
	if strings.HasPrefix(ua, "curl/") || strings.HasPrefix(ua, "wget/") || strings.Contains(ua, "python-requests") {
		return "Script"
	}
	return ""
}

var searchEngines = map[string]string{
	"google":     "Google",
	"bing":       "Bing",
	"duckduckgo": "DuckDuckGo",
	"yahoo":      "Yahoo",
	"ecosia":     "Ecosia",
}

// Referrer reduces a Referer header to a source name: a search engine, a
// bare host, or "Direct". Links from the site itself are "Direct" too.
func Referrer(ref, siteHost string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Host == "" {
		return "Direct"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == strings.TrimPrefix(strings.ToLower(siteHost), "www.") {
		return "Direct"
	}
	for label, name := range searchEngines {
		if host == label+".com" || strings.HasPrefix(host, label+".") || strings.Contains(host, "."+label+".") {
			return name
		}
	}
	return host
}
