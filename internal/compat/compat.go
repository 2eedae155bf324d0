// Package compat maps PyPI trove classifiers to a portage PYTHON_COMPAT
// expression.
package compat

import "strings"

const classifierPrefix = "Programming Language :: Python :: "

// classifierTargets maps a Python version classifier to the portage python
// targets it implies.
var classifierTargets = map[string][]string{
	"2":   {"2_7"},
	"2.6": {"2_7"},
	"2.7": {"2_7"},
	"3":   {"3_3", "3_4", "3_5"},
	"3.2": {"3_3"},
	"3.3": {"3_3"},
	"3.4": {"3_4"},
	"3.5": {"3_5"},
}

// defaultTargets is assumed when no Python version classifier is present.
var defaultTargets = []string{"2_7", "3_3", "3_4", "3_5"}

// Targets extracts the portage python targets implied by the given
// classifiers, in first-seen order without duplicates.
func Targets(classifiers []string) []string {
	var targets []string
	seen := make(map[string]bool)

	for _, classifier := range classifiers {
		if !strings.HasPrefix(classifier, classifierPrefix) {
			continue
		}
		entry := strings.TrimPrefix(classifier, classifierPrefix)
		for _, target := range classifierTargets[entry] {
			if seen[target] {
				continue
			}
			seen[target] = true
			targets = append(targets, target)
		}
	}

	if len(targets) == 0 {
		targets = append(targets, defaultTargets...)
	}
	return targets
}

// PythonCompat renders the PYTHON_COMPAT expression for the given
// classifiers.
func PythonCompat(classifiers []string) string {
	targets := Targets(classifiers)
	if len(targets) == 1 {
		return "( python" + targets[0] + " )"
	}
	return "( python{" + strings.Join(targets, ",") + "} )"
}
