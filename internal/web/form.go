// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"net/url"
	"strings"
)

// SearchURL returns {path}?search_str={term}, with term escaped the way a
// browser's encodeURIComponent does it: a space becomes %20, not '+', and
// the marks ! ' ( ) * stay literal.
func SearchURL(path, term string) string {
	return path + "?search_str=" + encodeComponent(term)
}

// componentUnescaper undoes the escapes QueryEscape applies beyond
// encodeURIComponent's reserved set.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// localPath returns p if it is an absolute path on this server, and "/"
// otherwise, so a submitted form can never redirect off-site.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "/"
	}
	return u.EscapedPath()
}
