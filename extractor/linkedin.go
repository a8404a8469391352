// Package extractor reads a profile snapshot out of a LinkedIn profile page.
//
// Markup differs between page versions, so every value is looked up through
// an ordered list of selectors and the first non-empty hit wins. Nothing in
// this package returns an error: a value that cannot be found is "".
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/talentclip/models"
)

var (
	nameSelectors = MustCompile(
		".pv-text-details__left-panel h1",
		"h1.text-heading-xlarge",
		".ph5.pb5 h1",
		"main h1",
	)

	headlineSelectors = MustCompile(
		".pv-text-details__left-panel .text-body-medium",
		".pv-text-details__left-panel span.text-body-medium",
		".text-body-medium.break-words",
		".pv-top-card--list-bullet li",
		".pv-text-details__right-panel span.text-body-small",
	)

	roleLineSelectors = MustCompile(
		".pv-text-details__right-panel li span[aria-hidden='true']",
		".pv-text-details__right-panel li",
		".pv-entity__summary-info h2 span[aria-hidden='true']",
		".pv-entity__summary-info h3 span[aria-hidden='true']",
	)

	experienceSectionSelectors = MustCompile(
		"#experience",
		"section[id*='experience']",
		"section[data-section='experience']",
		".experience-section",
	)

	// A single group selector keeps the items in document order.
	experienceItems = cascadia.MustCompile("ul > li, .pvs-list > li")

	experienceEntityMarker = cascadia.MustCompile("[data-view-name='profile-component-entity']")

	experienceRoleSelectors = MustCompile(
		".mr1.hoverable-link-text.t-bold span[aria-hidden='true']",
		".display-flex.align-items-center.mr1.t-bold span[aria-hidden='true']",
		".t-bold span[aria-hidden='true']",
		".pvs-entity__summary-info h3 span[aria-hidden='true']",
		"[data-field='experience_company_logo'] span[aria-hidden='true']",
	)

	experienceCompanySelectors = MustCompile(
		".t-14.t-normal span[aria-hidden='true']",
		".pvs-entity__secondary-title span[aria-hidden='true']",
		".display-flex.mt1 span[aria-hidden='true']",
		".pvs-entity__company-name span[aria-hidden='true']",
		".t-normal span[aria-hidden='true']",
	)
)

// Extract builds a snapshot from doc. location is the page's current URL
// and is always recorded as the profile URL, whatever else was found.
func Extract(doc *goquery.Document, location string) *models.ProfileSnapshot {
	snap := &models.ProfileSnapshot{ProfileURL: location}
	if doc == nil {
		return snap
	}
	root := doc.Selection

	snap.FullName = PickText(nameSelectors, root)
	snap.Headline = PickText(headlineSelectors, root)

	parsed := ParseRoleLine(PickText(roleLineSelectors, root))
	snap.CurrentRole = parsed.Role
	snap.CurrentCompany = parsed.Company

	if snap.CurrentRole == "" || snap.CurrentCompany == "" {
		fillFromExperience(root, snap)
	}
	return snap
}

// ExtractHTML parses rawHTML and runs Extract over it. Unparseable input
// yields a snapshot holding only the location.
func ExtractHTML(rawHTML, location string) *models.ProfileSnapshot {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &models.ProfileSnapshot{ProfileURL: location}
	}
	return Extract(doc, location)
}

// fillFromExperience fills whichever of role/company is still empty from
// the first entry of the experience section.
func fillFromExperience(root *goquery.Selection, snap *models.ProfileSnapshot) {
	section := experienceSectionSelectors.First(root)
	if section.Length() == 0 {
		return
	}
	item := firstExperienceItem(section)

	if snap.CurrentRole == "" {
		snap.CurrentRole = PickText(experienceRoleSelectors, item)
	}
	if snap.CurrentCompany == "" {
		snap.CurrentCompany = companyFromLine(PickText(experienceCompanySelectors, item))
	}
}

// firstExperienceItem prefers the first list item carrying the entity
// component marker, then the first list item, then the section itself.
func firstExperienceItem(section *goquery.Selection) *goquery.Selection {
	items := section.FindMatcher(experienceItems)
	if marked := items.FilterFunction(func(_ int, li *goquery.Selection) bool {
		return li.FindMatcher(experienceEntityMarker).Length() > 0
	}); marked.Length() > 0 {
		return marked.First()
	}
	if items.Length() > 0 {
		return items.First()
	}
	return section
}
