// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"strconv"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

// TimeAgo describes how long before now the date cell lies.
//
// Under a minute (or in the future) is "just now", then minutes and hours
// are counted, a whole day is "yesterday", and anything older is printed as
// "D Mon YYYY". Unparseable input is returned verbatim.
func TimeAgo(date string, now time.Time) string {
	if date == "" {
		return ""
	}
	t, ok := model.ParseDateTime(date)
	if !ok {
		return date
	}

	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := hours / 24

	switch {
	case diff < time.Minute:
		return "just now"
	case minutes < 60:
		return plural(minutes, "min") + " ago"
	case hours < 24:
		return plural(hours, "hr") + " ago"
	case days == 1:
		return "yesterday"
	default:
		return t.Format("2 Jan 2006")
	}
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
