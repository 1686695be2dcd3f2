package listing

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/requestutil"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
)

// HTTP lists directories by reading the links of
// the index page served for them.
type HTTP struct {
	Client *retryablehttp.Client
	// Base holds the scheme and host of the server.
	Base *url.URL
}

func (h *HTTP) List(ctx context.Context, dir string) ([]string, error) {
	dirURL := *h.Base
	dirURL.Path = strings.TrimSuffix(dir, "/") + "/"

	log := logr.FromContextOrDiscard(ctx).WithValues("url", dirURL.String())
	log.V(3).Info("fetching directory listing")

	buf := &bytes.Buffer{}
	if err := requestutil.Get(ctx, h.Client, dirURL.String(), buf); err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	doc, err := html.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("parsing listing: %w", err)
	}
	out := entries(&dirURL, links(doc))
	log.V(4).Info("listed directory", "entries", len(out))
	return out, nil
}

func links(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "a" {
			for _, attr := range node.Attr {
				if attr.Key == "href" {
					out = append(out, attr.Val)
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// entries returns the names of the links that point
// directly into dir.
func entries(dir *url.URL, hrefs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, href := range hrefs {
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		target := dir.ResolveReference(ref)
		if target.Host != dir.Host {
			continue
		}
		p := strings.TrimSuffix(target.Path, "/")
		if path.Dir(p) != path.Clean(dir.Path) {
			continue
		}
		name := path.Base(p)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
