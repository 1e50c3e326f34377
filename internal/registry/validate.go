package registry

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// luaKeywords cannot be used as field names with dot syntax.
var luaKeywords = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "if": {}, "in": {}, "local": {},
	"nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {}, "then": {},
	"true": {}, "until": {}, "while": {},
}

// Validate reports every registration problem at once. Names must be plain
// Lua identifiers so scripts can call them as `launcher.name(...)`, and
// reserved names belong to the host itself.
func (r *Registry) Validate(reserved ...string) error {
	errs := append([]string(nil), r.problems...)

	for _, name := range r.Names() {
		if !identifier.MatchString(name) {
			errs = append(errs, fmt.Sprintf("function '%s' is not a valid identifier", name))
			continue
		}
		if _, ok := luaKeywords[name]; ok {
			errs = append(errs, fmt.Sprintf("function '%s' is a reserved word", name))
		}
	}
	for _, name := range reserved {
		if r.Has(name) {
			errs = append(errs, fmt.Sprintf("function '%s' is provided by the host and cannot be registered", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
