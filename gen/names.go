package gen

import (
	"fmt"
	"strings"
	"unicode"
)

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// NameCollisionError is returned when two schema identifiers would map to
// the same Go identifier in one scope. The mapping must stay injective,
// so generation is aborted instead of silently merging the two.
type NameCollisionError struct {
	Scope  string
	Name   string // the Go identifier both map to
	First  string
	Second string
}

func (err *NameCollisionError) Error() string {
	return fmt.Sprintf("gen: %s and %s both map to %q in %s", err.First, err.Second, err.Name, err.Scope)
}

// resolver assigns Go identifiers to schema names. Each scope keeps a
// reverse map of claimed identifiers so that no two origins resolve to the
// same name; re-claiming the same origin is idempotent.
type resolver struct {
	suffix   string
	scopes   map[string]map[string]string // scope -> identifier -> origin
	reserved map[string]map[string]bool   // scope -> identifier -> taken
}

func newResolver(suffix string) *resolver {
	if suffix == "" {
		suffix = "_"
	}
	return &resolver{
		suffix:   suffix,
		scopes:   make(map[string]map[string]string),
		reserved: make(map[string]map[string]bool),
	}
}

// reserve blocks identifiers in a scope, typically the method set promoted
// from an embedded runtime type. A schema name resolving to a blocked
// identifier gets the suffix instead.
func (r *resolver) reserve(scope string, idents ...string) {
	m := r.reserved[scope]
	if m == nil {
		m = make(map[string]bool)
		r.reserved[scope] = m
	}
	for _, ident := range idents {
		m[ident] = true
	}
}

func (r *resolver) claim(scope, origin, ident string) (string, error) {
	if r.reserved[scope][ident] {
		ident += r.suffix
	}
	m := r.scopes[scope]
	if m == nil {
		m = make(map[string]string)
		r.scopes[scope] = m
	}
	if prev, ok := m[ident]; ok {
		if prev == origin {
			return ident, nil
		}
		return "", &NameCollisionError{Scope: scope, Name: ident, First: prev, Second: origin}
	}
	m[ident] = origin
	return ident, nil
}

// typeName maps a schema type name into the package scope. Type names pass
// through unchanged; a name that is a Go keyword gets the suffix.
func (r *resolver) typeName(name string) (string, error) {
	ident := name
	if goKeywords[ident] {
		ident += r.suffix
	}
	return r.claim("the package scope", "type "+name, ident)
}

// packageIdent claims a derived package-level identifier, such as a
// descriptor variable or a builder struct name.
func (r *resolver) packageIdent(origin, ident string) (string, error) {
	return r.claim("the package scope", origin, ident)
}

// memberName maps a field name to an exported struct field or method of
// the type owner resolves to.
func (r *resolver) memberName(owner, field string) (string, error) {
	return r.claim("members of "+owner, owner+"."+field, exportedName(field))
}

// enumConst maps an enum value to its package-level constant.
func (r *resolver) enumConst(enumName, enumIdent, value string) (string, error) {
	return r.claim("the package scope", enumName+"."+value, enumIdent+enumValueName(value))
}

// exportedName converts a schema member name to an exported identifier:
// the name is split on non-alphanumeric runes and each part is
// capitalized, preserving the rest of the part. userID stays UserID,
// user_id becomes UserId.
func exportedName(name string) string {
	parts := splitWords(name)
	if len(parts) == 0 {
		return "X"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "")
}

// enumValueName converts an enum value to an exported identifier suitable
// for joining to the enum type's name: NEW_HOPE becomes NewHope.
func enumValueName(value string) string {
	parts := splitWords(strings.ToLower(value))
	if len(parts) == 0 {
		return "X"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
