package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// matchingTextNodes returns text nodes under root whose content matches re,
// in document order. Script and style contents are skipped.
func matchingTextNodes(root *html.Node, re *regexp.Regexp) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// documentTextNodes is matchingTextNodes over the whole document
func documentTextNodes(doc *goquery.Document, re *regexp.Regexp) []*html.Node {
	if len(doc.Nodes) == 0 {
		return nil
	}
	return matchingTextNodes(doc.Nodes[0], re)
}

// following returns the node after n in document order, descending into children first
func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// nextMatching returns the first element after n in document order that matches selector
func nextMatching(doc *goquery.Document, n *html.Node, selector string) *goquery.Selection {
	for cur := following(n); cur != nil; cur = following(cur) {
		if cur.Type != html.ElementNode {
			continue
		}
		if sel := doc.FindNodes(cur); sel.Is(selector) {
			return sel
		}
	}
	return nil
}

// nodeText returns the collapsed text content of n
func nodeText(doc *goquery.Document, n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return collapse(n.Data)
	}
	return collapse(doc.FindNodes(n).Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
