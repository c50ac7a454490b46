package catalog

import (
	"regexp"
	"strings"
)

// quotePatterns are tried in order; the first non-empty capture wins.
var quotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`'([^']*)'`),
	regexp.MustCompile("‘([^‘’]*)’"),
	regexp.MustCompile(`"([^"]*)"`),
	regexp.MustCompile("“([^“”]*)”"),
}

// ExtractAppName pulls the application name out of a store share title such
// as "Check out 'App Name' on Google Play". Titles without a quoted name are
// returned trimmed.
func ExtractAppName(title string) string {
	for _, re := range quotePatterns {
		m := re.FindStringSubmatch(title)
		if m != nil && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(title)
}
