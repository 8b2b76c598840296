// Package parser extracts incident records from crime log HTML pages.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/campuslogs/crimelog/domain/incident"
)

// Selectors for the Drupal views markup the log pages are rendered with.
const (
	rowSelector      = ".views-row"
	numberSelector   = "span.field--name-title"
	reportedSelector = "div.field--name-field-reported .field__item"
	occurredSelector = "div.field--name-field-occurred .field__item"
	natureSelector   = "div.field--name-field-nature-of-incident1 .field__item"
	offensesSelector = "div.field--name-field-offenses1 .field__item"
	locationSelector = "div.field--name-field-location .field__item"
)

// ParseError reports a single malformed incident block. The rest of the
// page is still parsed; callers collect these alongside the good records.
type ParseError struct {
	CampusLabel string
	Row         int
	Reason      string
	Fragment    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s row %d: %s", e.CampusLabel, e.Row, e.Reason)
}

// PageResult holds everything extracted from one listing page.
type PageResult struct {
	Records     []incident.Record
	Errors      []*ParseError
	JunkDropped int
}

// Empty reports whether the page carried no incident blocks at all, which
// callers use to detect the end of pagination.
func (r PageResult) Empty() bool {
	return len(r.Records) == 0 && len(r.Errors) == 0 && r.JunkDropped == 0
}

// Parser extracts incident records from listing page HTML.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() Parser { return Parser{} }

// ParsePage extracts every incident block from a listing page. Malformed
// blocks are collected as ParseErrors without aborting the page; known
// placeholder rows (blank or punctuation-only incident numbers) are dropped
// silently and only counted.
func (p Parser) ParsePage(html, campusLabel string) (PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageResult{}, fmt.Errorf("parse page for %s: %w", campusLabel, err)
	}

	var result PageResult
	doc.Find(rowSelector).Each(func(i int, block *goquery.Selection) {
		record, perr := p.parseBlock(block, campusLabel, i)
		if perr != nil {
			result.Errors = append(result.Errors, perr)
			return
		}
		if record.IsJunk() {
			result.JunkDropped++
			return
		}
		result.Records = append(result.Records, record)
	})

	return result, nil
}

func (p Parser) parseBlock(block *goquery.Selection, campusLabel string, row int) (incident.Record, *ParseError) {
	number := text(block, numberSelector)
	reported := text(block, reportedSelector)

	// A block with neither a number nor a reported time is not an incident
	// at all; treat it as malformed rather than junk.
	if number == "" && reported == "" {
		return incident.Record{}, &ParseError{
			CampusLabel: campusLabel,
			Row:         row,
			Reason:      "no incident number or reported time",
			Fragment:    fragment(block),
		}
	}

	code := incident.CampusCodeFromNumber(number)
	record := incident.NewRecord(number, code, campusLabel).
		WithReported(reported).
		WithLocation(text(block, locationSelector)).
		WithNature(text(block, natureSelector))

	if occurred := text(block, occurredSelector); occurred != "" {
		start, end := incident.SplitOccurredRange(occurred)
		record = record.WithOccurred(start, end)
	}

	if offenses := text(block, offensesSelector); offenses != "" {
		record = record.WithOffenses(splitOffenses(offenses))
	}

	return record, nil
}

func text(block *goquery.Selection, selector string) string {
	return strings.TrimSpace(block.Find(selector).First().Text())
}

// fragment returns a truncated HTML snippet of the block for error reports.
func fragment(block *goquery.Selection) string {
	h, err := goquery.OuterHtml(block)
	if err != nil {
		return ""
	}
	h = strings.TrimSpace(h)
	if len(h) > 500 {
		h = h[:500] + "..."
	}
	return h
}

// maxOffenseLen bounds a single offense description. Entries beyond it are
// markup accidents (unclosed tags swallowing the rest of the block), not
// offense text.
const maxOffenseLen = 200

// splitOffenses breaks an offense field into individual descriptions. The
// site publishes one offense per line; stray slashes separating offenses on
// a single line are split too. Blank and overlong entries are dropped.
func splitOffenses(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		for _, part := range strings.Split(line, " / ") {
			part = strings.TrimSpace(part)
			if part == "" || len(part) > maxOffenseLen {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}
