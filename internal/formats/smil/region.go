package smil

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

// Regions lists the region ids declared in head/layout, in document order.
func Regions(data []byte) ([]string, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.ParseError{Format: Name, Message: err.Error(), Err: err}
	}
	nodes, err := doc.XPath("/smil/head/layout/region[@id]")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.Attr("id"))
	}
	return ids, nil
}

// MediaInRegion returns the src of every media object rendered in the
// named region, in document order. The region must be declared in the
// layout.
func MediaInRegion(data []byte, region string) ([]string, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.ParseError{Format: Name, Message: err.Error(), Err: err}
	}
	declared, err := doc.XPath("/smil/head/layout/region")
	if err != nil {
		return nil, err
	}
	found := false
	for _, r := range declared {
		if r.Attr("id") == region {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NewNotFound("region", region)
	}

	// The region id is compared here rather than spliced into the expression.
	nodes, err := doc.XPath("/smil/body//*[@region][@src]")
	if err != nil {
		return nil, err
	}
	var srcs []string
	for _, n := range nodes {
		if IsMediaTag(n.Name()) && n.Attr("region") == region {
			srcs = append(srcs, n.Attr("src"))
		}
	}
	return srcs, nil
}
