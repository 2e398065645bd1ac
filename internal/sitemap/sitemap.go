// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sitemap builds the sitemap XML document from published articles,
// navigation pages, tags, and archive dates.
package sitemap

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// lastModLayout is ISO-8601 with milliseconds and a numeric zone offset,
// e.g. 2013-01-18T10:00:00.000+00:00.
const lastModLayout = "2006-01-02T15:04:05.000-07:00"

// URL is a single sitemap URL entry.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap is the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// New creates an empty sitemap document.
func New() *Sitemap {
	return &Sitemap{XMLNS: XMLNamespace}
}

// Add appends a URL entry without a last-modified stamp.
func (s *Sitemap) Add(loc string) {
	s.URLs = append(s.URLs, URL{Loc: loc})
}

// AddWithLastMod appends a URL entry stamped with the given modification
// time.
func (s *Sitemap) AddWithLastMod(loc string, lastMod time.Time) {
	s.URLs = append(s.URLs, URL{Loc: loc, LastMod: lastMod.Format(lastModLayout)})
}

// XML renders the document with the XML declaration prepended.
func (s *Sitemap) XML() ([]byte, error) {
	body, err := xml.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
