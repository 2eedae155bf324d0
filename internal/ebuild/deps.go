package ebuild

import (
	"regexp"
	"strings"

	"github.com/slchris/gpypi/internal/enamer"
)

// requirementRe matches the name and an optional first version constraint
// of a PEP 508 requirement, covering both "name (>=1.0)" and "name>=1.0"
// spellings.
var requirementRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*\(?\s*(==|>=|<=|~=|!=|>|<)?\s*([0-9][0-9A-Za-z._]*)?`)

// Dependencies converts requires_dist entries into portage atoms in the
// given category. Requirements guarded by an extra marker are skipped, as
// are entries that cannot be parsed.
func Dependencies(requiresDist []string, category string) []string {
	var atoms []string
	for _, requirement := range requiresDist {
		atom := dependencyAtom(requirement, category)
		if atom != "" {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

// DependencyNames extracts the bare package names from requires_dist
// entries, skipping extras-guarded requirements.
func DependencyNames(requiresDist []string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, requirement := range requiresDist {
		name := dependencyName(requirement)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func dependencyName(requirement string) string {
	spec := requirement
	if idx := strings.Index(requirement, ";"); idx >= 0 {
		if strings.Contains(requirement[idx+1:], "extra") {
			return ""
		}
		spec = requirement[:idx]
	}
	m := requirementRe.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return ""
	}
	return m[1]
}

func dependencyAtom(requirement, category string) string {
	spec := requirement
	if idx := strings.Index(requirement, ";"); idx >= 0 {
		marker := requirement[idx+1:]
		if strings.Contains(marker, "extra") {
			return ""
		}
		spec = requirement[:idx]
	}
	spec = strings.TrimSpace(spec)

	m := requirementRe.FindStringSubmatch(spec)
	if m == nil {
		return ""
	}
	name, operator, version := m[1], m[2], m[3]

	pn, _ := enamer.ParsePN(name, "", nil)
	if pn == "" {
		pn = strings.ToLower(name)
	}

	if operator == "" || version == "" || operator == "!=" {
		return enamer.ConstructAtom(pn, category, "", "", nil, "")
	}

	switch operator {
	case "==":
		operator = "="
	case "~=":
		operator = ">="
	}
	return enamer.ConstructAtom(pn, category, version, operator, nil, "")
}
