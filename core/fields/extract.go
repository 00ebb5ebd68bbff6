package fields

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// labelPatterns are tried in order for every alias: plain "Label: value",
// bold "**Label**: value", bold up to the end of the line, then bullet or
// plus prefixed labels with optional bold and colon. Only the third lets the
// value run past a comma.
var labelPatterns = []string{
	`(?i)\b%s\s*:\s*([^,\n]+)`,
	`(?i)\*\*%s\*\*\s*:\s*([^,\n]+)`,
	`(?i)\*\*%s\*\*\s*:\s*([^\n]+)`,
	`(?i)[\*\+]\s*\*?\*?%s\*?\*?\s*:?\s*([^,\n]+)`,
}

var compiled sync.Map // alias -> []*regexp.Regexp

func patternsFor(alias string) []*regexp.Regexp {
	if cached, ok := compiled.Load(alias); ok {
		return cached.([]*regexp.Regexp)
	}

	quoted := regexp.QuoteMeta(alias)
	res := make([]*regexp.Regexp, 0, len(labelPatterns))
	for _, p := range labelPatterns {
		res = append(res, regexp.MustCompile(fmt.Sprintf(p, quoted)))
	}

	actual, _ := compiled.LoadOrStore(alias, res)
	return actual.([]*regexp.Regexp)
}

// ExtractField looks for a labelled value in text. Each name is tried in
// priority order against every label pattern; the first non-empty capture
// is returned trimmed. ok is false when nothing matched.
func ExtractField(text string, names ...string) (value string, ok bool) {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		for _, re := range patternsFor(name) {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if v := strings.TrimSpace(m[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Extract runs ExtractField with the aliases of f.
func Extract(text string, f Field) (string, bool) {
	return ExtractField(text, f.Aliases...)
}
