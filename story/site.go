package story

import (
	"net/url"
	"regexp"
	"strings"
)

const UnknownSite = "Unknown"

type site struct {
	host string
	key  string
	name string
	path *regexp.Regexp
}

var sites = []site{
	{"archiveofourown.org", "ao3", "Archive of Our Own", regexp.MustCompile(`/works/(\d+)`)},
	{"fanfiction.net", "ffnet", "FanFiction.Net", regexp.MustCompile(`/s/(\d+)`)},
	{"fictionpress.com", "fictionpress", "FictionPress", regexp.MustCompile(`/s/(\d+)`)},
	{"fimfiction.net", "fimfiction", "FIMFiction", regexp.MustCompile(`/story/(\d+)`)},
	{"wattpad.com", "wattpad", "Wattpad", regexp.MustCompile(`/story/(\d+)`)},
}

func lookupSite(rawURL string) (*site, *url.URL) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return nil, nil
	}
	host := strings.ToLower(u.Hostname())
	for i := range sites {
		s := &sites[i]
		if host == s.host || strings.HasSuffix(host, "."+s.host) {
			return s, u
		}
	}
	return nil, u
}

// IsValidStoryURL reports whether rawURL is an absolute URL on a supported
// archive.
func IsValidStoryURL(rawURL string) bool {
	s, _ := lookupSite(rawURL)
	return s != nil
}

// SiteFromURL returns the display name of the archive hosting rawURL, or
// "Unknown".
func SiteFromURL(rawURL string) string {
	if s, _ := lookupSite(rawURL); s != nil {
		return s.name
	}
	return UnknownSite
}

// ExtractStoryID returns the numeric story id embedded in the URL path, or ""
// when the URL is not a recognised story URL.
func ExtractStoryID(rawURL string) string {
	s, u := lookupSite(rawURL)
	if s == nil {
		return ""
	}
	if m := s.path.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return ""
}

// qualifiedID prefixes the site story id with a short site key so ids from
// different archives never collide.
func qualifiedID(rawURL string) string {
	s, u := lookupSite(rawURL)
	if s == nil {
		return ""
	}
	if m := s.path.FindStringSubmatch(u.Path); m != nil {
		return s.key + "-" + m[1]
	}
	return ""
}
