// Package view renders site fragments as templ components.
package view

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sitekit/core/hierarchy"
	"github.com/dmitrymomot/sitekit/core/menu"
)

// Sidebar renders the menu forest as nested lists.
// Disabled entries and entries without a route render as plain text.
func Sidebar(forest []*hierarchy.Node[menu.Node]) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<nav class="sidebar">`)
		writeList(&b, forest)
		b.WriteString(`</nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeList(b *strings.Builder, nodes []*hierarchy.Node[menu.Node]) {
	if len(nodes) == 0 {
		return
	}
	b.WriteString(`<ul>`)
	for _, n := range nodes {
		writeItem(b, n)
	}
	b.WriteString(`</ul>`)
}

func writeItem(b *strings.Builder, n *hierarchy.Node[menu.Node]) {
	v := n.Value
	label := v.Name
	if label == "" {
		label = v.Code
	}

	b.WriteString(`<li data-code="`)
	b.WriteString(templ.EscapeString(v.Code))
	b.WriteString(`">`)
	if v.Icon != "" {
		b.WriteString(`<i class="`)
		b.WriteString(templ.EscapeString(v.Icon))
		b.WriteString(`"></i>`)
	}

	if href := v.Href(); v.Enabled && href != "" {
		b.WriteString(`<a href="`)
		b.WriteString(templ.EscapeString(string(templ.URL(href))))
		b.WriteString(`"`)
		if v.Description != "" {
			b.WriteString(` title="`)
			b.WriteString(templ.EscapeString(v.Description))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
		b.WriteString(templ.EscapeString(label))
		b.WriteString(`</a>`)
	} else {
		b.WriteString(`<span>`)
		b.WriteString(templ.EscapeString(label))
		b.WriteString(`</span>`)
	}

	writeList(b, n.Children)
	b.WriteString(`</li>`)
}
