package importer

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseNetscape reads a browser bookmarks export (the NETSCAPE-Bookmark-file-1 format). Every <H3>
// becomes a folder holding the links of the <DL> that follows it; nested folders are flattened and
// keep their own name. Links outside any folder go to defaultFolder.
func ParseNetscape(r io.Reader, defaultFolder string) ([]Folder, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bookmarks html: %w", err)
	}
	folders := newFolderList()

	var walk func(n *html.Node, folder string)
	walk = func(n *html.Node, folder string) {
		// the <DL> of a folder is the next <DL> sibling of its <H3>
		next := folder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "h3":
				if name := cleanText(textContent(c)); name != "" {
					next = name
				}
			case "a":
				folders.add(folder, bookmarks.Entry{
					Title: cleanText(textContent(c)),
					URL:   strings.TrimSpace(attr(c, "href")),
				})
			case "dl":
				walk(c, next)
				next = folder
			default:
				walk(c, folder)
			}
		}
	}
	walk(doc, defaultFolder)
	return folders.result(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
