package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/headings"
)

// Link is one hyperlink lifted out of a post, together with the heading path
// that was active at the link site.
type Link struct {
	Text     string
	URL      string
	Category string
}

// Extractor renders markdown posts and collects every hyperlink in document
// order. Links whose target contains an excluded-domain substring are
// dropped, as are anchors with no target or no visible text.
type Extractor struct {
	md       goldmark.Markdown
	excluded []string
	log      logger.Logger
}

// New builds an Extractor. The markdown engine is plain CommonMark: bare URLs
// are deliberately not autolinked, so only links an author wrote down are
// counted.
func New(excludedDomains []string, log logger.Logger) *Extractor {
	return &Extractor{
		md:       goldmark.New(),
		excluded: excludedDomains,
		log:      log,
	}
}

type postMeta struct {
	Title string `yaml:"title"`
}

// Extract returns the links referenced by one markdown document, each with
// the category path of its enclosing headings.
func (e *Extractor) Extract(content []byte) ([]Link, error) {
	var meta postMeta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		// Posts without well-formed front matter are still worth scanning.
		body = content
	} else if meta.Title != "" {
		e.log.Debug("parsed post front matter", logger.String("title", meta.Title))
	}

	var buf bytes.Buffer
	if err := e.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered document: %w", err)
	}

	var links []Link
	tracker := &headings.Tracker{}

	doc.Find("h1,h2,h3,h4,h5,h6,a").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if level, ok := headingLevel(tag); ok {
			tracker.Update(s.Text(), level)
			return
		}

		href := strings.TrimSpace(s.AttrOr("href", ""))
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return
		}
		if match, ok := e.excludedMatch(href); ok {
			e.log.Debug("skipping excluded domain",
				logger.String("url", href), logger.String("match", match))
			return
		}

		links = append(links, Link{Text: text, URL: href, Category: tracker.Path()})
	})

	e.log.Debug("extracted links from post", logger.Int("count", len(links)))
	return links, nil
}

// headingLevel maps h1..h6 tag names to their numeric level. Anything else,
// hr included, is not a heading.
func headingLevel(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0, false
	}
	return int(tag[1] - '0'), true
}

func (e *Extractor) excludedMatch(href string) (string, bool) {
	for _, domain := range e.excluded {
		if strings.Contains(href, domain) {
			return domain, true
		}
	}
	return "", false
}
