package enamer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	categoryRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	pkgNameRe  = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_+-]*$`)
	operators  = []string{">=", "<=", "=", "<", ">", "~"}
)

// IsValidAtom reports whether atom is a well-formed portage atom
// (category/pn, optionally version-operator qualified).
func IsValidAtom(atom string) bool {
	operator := ""
	for _, op := range operators {
		if strings.HasPrefix(atom, op) {
			operator = op
			atom = strings.TrimPrefix(atom, op)
			break
		}
	}

	parts := strings.Split(atom, "/")
	if len(parts) != 2 {
		return false
	}
	category, pkg := parts[0], parts[1]
	if !categoryRe.MatchString(category) {
		return false
	}

	if operator == "" {
		if !pkgNameRe.MatchString(pkg) {
			return false
		}
		// An unversioned atom must not end in a version-like component.
		_, _, _, versioned := pkgSplit(pkg)
		return !versioned
	}

	name, _, _, ok := pkgSplit(pkg)
	return ok && pkgNameRe.MatchString(name)
}

// ConstructAtom assembles a portage atom from its parts. uses renders a
// USE-dependency block and ifUse wraps the atom in a conditional.
func ConstructAtom(pn, category, pv, operator string, uses []string, ifUse string) string {
	atom := fmt.Sprintf("%s%s/%s", operator, category, pn)
	if pv != "" {
		atom += "-" + pv
	}
	if len(uses) > 0 {
		atom += fmt.Sprintf("[%s]", strings.Join(uses, ","))
	}
	if ifUse != "" {
		atom = fmt.Sprintf("%s? ( %s )", ifUse, atom)
	}
	return atom
}
