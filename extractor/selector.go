package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Strategy is one compiled lookup in an ordered fallback list.
type Strategy struct {
	sel cascadia.Selector
}

// Strategies is an ordered list of lookups evaluated first-match-wins.
type Strategies []Strategy

// Compile parses each selector with cascadia. Lists are compiled once at
// package init, so a malformed selector is a programming error.
func Compile(selectors ...string) (Strategies, error) {
	out := make(Strategies, 0, len(selectors))
	for _, src := range selectors {
		sel, err := cascadia.Compile(src)
		if err != nil {
			return nil, err
		}
		out = append(out, Strategy{sel: sel})
	}
	return out, nil
}

// MustCompile is like Compile but panics on a bad selector.
func MustCompile(selectors ...string) Strategies {
	s, err := Compile(selectors...)
	if err != nil {
		panic("extractor: " + err.Error())
	}
	return s
}

// First returns the first element matched by the first strategy that
// matches anything under root. The returned selection is empty when no
// strategy matches.
func (ss Strategies) First(root *goquery.Selection) *goquery.Selection {
	for _, s := range ss {
		if found := root.FindMatcher(s.sel).First(); found.Length() > 0 {
			return found
		}
	}
	return root.Slice(0, 0)
}

// PickText tries each strategy in order under root and returns the
// sanitized text of the first element whose sanitized text is non-empty.
// Only the first element a strategy matches is considered. It returns ""
// when nothing matches.
func PickText(strategies Strategies, root *goquery.Selection) string {
	if root == nil {
		return ""
	}
	for _, s := range strategies {
		el := root.FindMatcher(s.sel).First()
		if el.Length() == 0 {
			continue
		}
		if text := Sanitize(el.Text()); text != "" {
			return text
		}
	}
	return ""
}
