// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package frontend

import (
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
)

// CardHTML renders the listing card of one article. root is the relative
// path from the hosting page back to the site root.
func CardHTML(r *render.Renderer, root string, a model.Article) (string, error) {
	return r.Render(render.TemplateCardFragment, render.Card{Root: root, Article: a})
}
