package lister

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/lasf-data/results-cli/internal/fetcher"
)

// HTMLLister fetches the listing page over HTTP and tokenizes its anchors.
type HTMLLister struct {
	fetcher fetcher.Fetcher
}

// NewHTMLLister creates an HTMLLister backed by the given fetcher.
func NewHTMLLister(f fetcher.Fetcher) *HTMLLister {
	return &HTMLLister{fetcher: f}
}

// ListResultLinks downloads baseURL and returns every anchor whose href
// contains the year.
func (l *HTMLLister) ListResultLinks(ctx context.Context, baseURL string, year int) ([]Link, error) {
	body, err := l.fetcher.Download(ctx, baseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "lister: fetch %s", baseURL)
	}
	defer body.Close() //nolint:errcheck

	links, err := parseLinks(body, year)
	if err != nil {
		return nil, eris.Wrapf(err, "lister: parse %s", baseURL)
	}
	return links, nil
}

// parseLinks walks the HTML token stream collecting <a> hrefs and their
// visible text. Anchor text may span nested elements (bold, spans), so text
// tokens accumulate until the closing tag.
func parseLinks(r io.Reader, year int) ([]Link, error) {
	z := html.NewTokenizer(r)
	yearStr := strconv.Itoa(year)

	var links []Link
	inAnchor := false
	href := ""
	var text strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return links, nil
		case html.StartTagToken:
			t := z.Token()
			if t.Data != "a" {
				continue
			}
			href = ""
			for _, attr := range t.Attr {
				if attr.Key == "href" {
					href = attr.Val
				}
			}
			inAnchor = true
			text.Reset()
		case html.TextToken:
			if inAnchor {
				text.WriteString(z.Token().Data)
			}
		case html.EndTagToken:
			t := z.Token()
			if t.Data != "a" || !inAnchor {
				continue
			}
			if href != "" && strings.Contains(href, yearStr) {
				links = append(links, Link{
					Href: href,
					Text: strings.TrimSpace(text.String()),
				})
			}
			inAnchor = false
		}
	}
}
