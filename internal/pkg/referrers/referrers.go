// Package referrers turns raw referrer values from the visitor log into the
// source names shown next to each visit.
package referrers

import (
	"net/url"
	"strings"
)

// Direct labels visits that arrived without a referrer.
const Direct = "Direct / Unknown"

// knownSources maps registrable hostnames to display names. Subdomains
// resolve to their parent entry.
var knownSources = map[string]string{
	// Search engines
	"google.com":     "Google",
	"google.co.uk":   "Google",
	"google.de":      "Google",
	"google.fr":      "Google",
	"google.es":      "Google",
	"bing.com":       "Bing",
	"duckduckgo.com": "DuckDuckGo",
	"yahoo.com":      "Yahoo",
	"baidu.com":      "Baidu",
	"yandex.ru":      "Yandex",
	"ecosia.org":     "Ecosia",

	// Social
	"x.com":         "X/Twitter",
	"twitter.com":   "X/Twitter",
	"t.co":          "X/Twitter",
	"facebook.com":  "Facebook",
	"fb.com":        "Facebook",
	"instagram.com": "Instagram",
	"linkedin.com":  "LinkedIn",
	"lnkd.in":       "LinkedIn",
	"tiktok.com":    "TikTok",
	"pinterest.com": "Pinterest",
	"reddit.com":    "Reddit",
	"threads.net":   "Threads",
	"bsky.app":      "Bluesky",
	"youtube.com":   "YouTube",
	"youtu.be":      "YouTube",
	"discord.com":   "Discord",
	"whatsapp.com":  "WhatsApp",
	"t.me":          "Telegram",
	"slack.com":     "Slack",

	// Communities
	"news.ycombinator.com": "Hacker News",
	"producthunt.com":      "Product Hunt",
	"dev.to":               "DEV Community",
	"medium.com":           "Medium",
	"substack.com":         "Substack",
	"github.com":           "GitHub",
	"stackoverflow.com":    "Stack Overflow",

	// Mail clients
	"mail.google.com":  "Gmail",
	"outlook.live.com": "Outlook",
	"mail.yahoo.com":   "Yahoo Mail",

	// Link shorteners re-sharing a short link
	"bit.ly":      "Bitly",
	"tinyurl.com": "TinyURL",
}

// Label returns a display name for a referrer given as a full URL or a bare
// hostname. Unknown hosts come back without "www." and with a capital letter.
func Label(raw string) string {
	host := Hostname(raw)
	if host == "" {
		return Direct
	}

	if name, ok := knownSources[host]; ok {
		return name
	}

	// Walk up parent domains: m.facebook.com -> facebook.com
	for parent := host; ; {
		dot := strings.IndexByte(parent, '.')
		if dot == -1 {
			break
		}
		parent = parent[dot+1:]
		if name, ok := knownSources[parent]; ok {
			return name
		}
	}

	return strings.ToUpper(host[:1]) + host[1:]
}

// Hostname extracts the lower-cased host of raw, without "www." and port.
func Hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "//" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
