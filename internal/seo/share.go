// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "net/url"

// ShareLink is a social network share button.
type ShareLink struct {
	Network string // CSS modifier: fb, tw, li, wa
	Label   string
	Icon    string
	URL     string
}

// ShareLinks builds the share buttons for a page. Both pageURL and title are
// query-escaped into the network URLs.
func ShareLinks(pageURL, title string) []ShareLink {
	u := url.QueryEscape(pageURL)
	t := url.QueryEscape(title)
	return []ShareLink{
		{
			Network: "fb",
			Label:   "Facebook",
			Icon:    "fab fa-facebook-f",
			URL:     "https://www.facebook.com/sharer/sharer.php?u=" + u,
		},
		{
			Network: "tw",
			Label:   "X",
			Icon:    "fab fa-twitter",
			URL:     "https://twitter.com/intent/tweet?text=" + t + "&url=" + u,
		},
		{
			Network: "li",
			Label:   "LinkedIn",
			Icon:    "fab fa-linkedin-in",
			URL:     "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
		},
		{
			Network: "wa",
			Label:   "WhatsApp",
			Icon:    "fab fa-whatsapp",
			URL:     "https://api.whatsapp.com/send?text=" + url.QueryEscape(title+" "+pageURL),
		},
	}
}
