package scraper

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/yegors/awardsearch/internal/flights"
)

// Class names used by the award results page. The markup is not a contract;
// when the airline redesigns the page these are the constants to update.
const (
	classFlightRow   = "grid-x grid-padding-x ng-star-inserted"
	classOriginCell  = "cell large-3 origin"
	classDestCell    = "cell large-3 destination"
	classCityCode    = "city-code"
	classFlightTimes = "flt-times"
	classDuration    = "duration"
	classStops       = "stops"
	classCabinCell   = "cell auto pad-left-xxs pad-right-xxs ng-star-inserted"
	classCabinLabel  = "hidden-accessible hidden-product-type"
	classCabinMiles  = "per-pax-amount ng-star-inserted"
)

// extractFlights walks the parsed page and isolates the raw text fields for
// every flight row. A row missing one of its mandatory cells means the page
// did not render the expected markup, which fails the whole extraction.
func extractFlights(doc *html.Node) ([]flights.RawFlightFields, error) {
	rows := findAllByClass(doc, classFlightRow)

	raw := make([]flights.RawFlightFields, 0, len(rows))
	for _, row := range rows {
		fields, err := extractRow(row)
		if err != nil {
			return nil, err
		}
		raw = append(raw, fields)
	}

	return raw, nil
}

func extractRow(row *html.Node) (flights.RawFlightFields, error) {
	originCell := findByClass(row, classOriginCell)
	destCell := findByClass(row, classDestCell)
	durationCell := findByClass(row, classDuration)
	stopsCell := findByClass(row, classStops)
	if originCell == nil || destCell == nil || durationCell == nil || stopsCell == nil {
		return flights.RawFlightFields{}, fmt.Errorf("flight row is missing a mandatory cell")
	}

	origin := findByClass(originCell, classCityCode)
	departTime := findByClass(originCell, classFlightTimes)
	destination := findByClass(destCell, classCityCode)
	arriveTime := findByClass(destCell, classFlightTimes)
	if origin == nil || departTime == nil || destination == nil || arriveTime == nil {
		return flights.RawFlightFields{}, fmt.Errorf("flight row is missing city code or times")
	}

	fields := flights.RawFlightFields{
		Origin:      textContent(origin),
		Destination: textContent(destination),
		DepartTime:  textContent(departTime),
		ArriveTime:  textContent(arriveTime),
		Duration:    textContent(durationCell),
		NumStops:    textContent(stopsCell),
	}

	// Cabin cells without both a label and a per-passenger amount are
	// sold-out placeholders; skip them.
	for _, cabinCell := range findAllByClass(row, classCabinCell) {
		label := findByClass(cabinCell, classCabinLabel)
		miles := findByClass(cabinCell, classCabinMiles)
		if label == nil || miles == nil {
			continue
		}
		fields.Fares = append(fields.Fares, flights.RawCabinFare{
			Label: textContent(label),
			Miles: textContent(miles),
		})
	}

	return fields, nil
}

// hasClass reports whether the node's class attribute equals value exactly.
func hasClass(n *html.Node, value string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return attr.Val == value
		}
	}
	return false
}

// findAllByClass returns every descendant element whose class attribute
// equals value, in document order.
func findAllByClass(n *html.Node, value string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, value) {
			found = append(found, node)
			return // rows do not nest
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

// findByClass returns the first descendant element whose class attribute
// equals value, or nil.
func findByClass(n *html.Node, value string) *html.Node {
	var walk func(*html.Node) *html.Node
	walk = func(node *html.Node) *html.Node {
		if hasClass(node, value) {
			return node
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if found := walk(child); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(n)
}

// textContent returns the node's concatenated text, trimmed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
