// Package scrape builds sessions from grade tables published as HTML.
package scrape

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/pkg/errors"
)

var ErrNoDocument = errors.New("no page was fetched")

// Page is a source filled from the HTML documents found at its URLs.
type Page interface {
	Urls() []string
	UnmarshalDoc(doc *goquery.Document) error
}

// Fetch visits every URL of p with a clone of c and hands each response to
// p. It stops at the first page that fails to load or parse, and reports
// ErrNoDocument when no page reached p at all.
func Fetch(c *colly.Collector, p Page) error {
	var (
		parsed int
		failed error
	)
	c = c.Clone()
	c.OnResponse(func(res *colly.Response) {
		if failed != nil {
			return
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			failed = errors.Wrap(err, "parsing html")
			return
		}
		if err := p.UnmarshalDoc(doc); err != nil {
			failed = err
			return
		}
		parsed++
	})
	c.OnError(func(_ *colly.Response, err error) {
		if failed == nil {
			failed = err
		}
	})

	for _, url := range p.Urls() {
		if err := c.Visit(url); err != nil && failed == nil {
			failed = err
		}
		if failed != nil {
			return failed
		}
	}
	if parsed == 0 {
		return ErrNoDocument
	}
	return nil
}
