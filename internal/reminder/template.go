package reminder

import "regexp"

// tokenPattern matches {{ name }} placeholders, whitespace around the
// name ignored.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render substitutes {{ name }} tokens in tmpl from vars. Tokens whose
// name has no entry in vars are replaced with the empty string rather
// than left literal. There is no recursive expansion and no escaping:
// substituted values flow into HTML bodies as-is. An empty template
// renders to "".
func Render(tmpl string, vars map[string]string) string {
	if tmpl == "" {
		return ""
	}
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		return vars[name]
	})
}
