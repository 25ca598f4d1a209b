// Package templates renders the site's pages as templ components. Components
// are built directly on templ.ComponentFunc; markup is kept minimal and
// unstyled.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/tmorrow/highroad/internal/laws"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// layout wraps a body component in the shared page chrome.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | High Road</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
<header>
<nav>
<a href="/">High Road</a>
<a href="/states">States</a>
<a href="/countries">Countries</a>
<a href="/admin/laws">Admin</a>
</nav>
</header>
<main>
`, esc(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<footer>
<form method="post" action="/newsletter">
<label>Travel updates: <input type="email" name="email" required></label>
<button type="submit">Subscribe</button>
</form>
</footer>
</body>
</html>
`)
		return err
	})
}

// adminLawsURL builds the admin table URL carrying the full view state, so
// filter, search, sort and selection survive every navigation.
func adminLawsURL(q laws.TableQuery, sel laws.Selection) string {
	v := url.Values{}
	if q.Filter != laws.FilterAll {
		v.Set("type", string(q.Filter))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	v.Set("sort", string(q.Sort))
	v.Set("order", string(q.Dir))
	if sel.Count() > 0 {
		v.Set("selected", sel.Encode())
	}
	return "/admin/laws?" + v.Encode()
}
