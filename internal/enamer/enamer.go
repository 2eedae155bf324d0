// Package enamer converts Python packaging metadata into Gentoo ebuild
// naming: PN/PV derivation, MY_* bash substitutions and SRC_URI rewriting.
package enamer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// validExtensions are archive extensions recognized when stripping
// filenames.
var validExtensions = []string{".zip", ".tgz", ".tar.gz", ".tar.bz2", ".tbz2"}

// Vars are the ebuild naming variables derived for a package.
type Vars struct {
	PN     string
	PV     string
	P      string
	MyPN   []string
	MyPV   []string
	MyP    string
	MyPRaw string
	SrcURI string
}

// Overrides carries user-supplied values that take precedence over
// derivation.
type Overrides struct {
	PN   string
	PV   string
	MyPN []string
	MyPV []string
	MyP  string
}

// StripExt removes a recognized archive extension from path, if present.
func StripExt(path string) string {
	for _, ext := range validExtensions {
		if strings.HasSuffix(path, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// Filename returns the file name of uri, minus any archive extension.
func Filename(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	parts := strings.Split(parsed.Path, "/")
	return StripExt(parts[len(parts)-1])
}

// IsValidURI reports whether uri uses an addressing scheme portage
// understands.
func IsValidURI(uri string) bool {
	return strings.HasPrefix(uri, "http:") || strings.HasPrefix(uri, "https:") ||
		strings.HasPrefix(uri, "ftp:") || strings.HasPrefix(uri, "mirror:") ||
		strings.HasPrefix(uri, "svn:")
}

// SanitizeURI strips query, fragment and parameters from uri.
func SanitizeURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

var (
	versionRe  = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*[a-z]?(_(alpha|beta|pre|rc|p)[0-9]*)*$`)
	revisionRe = regexp.MustCompile(`^r[0-9]+$`)
)

// pkgSplit breaks a package-version string into name, version and
// revision, mirroring portage's pkgsplit.
func pkgSplit(p string) (name, version, revision string, ok bool) {
	parts := strings.Split(p, "-")
	revision = "r0"

	if len(parts) > 1 && revisionRe.MatchString(parts[len(parts)-1]) {
		revision = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return "", "", "", false
	}

	version = parts[len(parts)-1]
	if !versionRe.MatchString(version) {
		return "", "", "", false
	}

	name = strings.Join(parts[:len(parts)-1], "-")
	if name == "" {
		return "", "", "", false
	}
	return name, version, revision, true
}

// SplitURI derives (pn, pv, rev) from the file name of uri.
func SplitURI(uri string) (pn, pv, rev string, ok bool) {
	return pkgSplit(Filename(uri))
}

// MyP rewrites uri with ${MY_P} in place of the file name and returns the
// raw value the variable stands for.
func MyP(uri string) (srcURI, myPRaw string) {
	myPRaw = Filename(uri)
	if myPRaw == "" {
		return uri, ""
	}
	return strings.ReplaceAll(uri, myPRaw, "${MY_P}"), myPRaw
}

var (
	badSuffixRe  = regexp.MustCompile(`(?i)([._-]*(?:dev|devel|final|stable|snapshot))$`)
	revSuffixRe  = regexp.MustCompile(`(?i)^(.*?)([._-]*(?:r|patch|p)[._-]*)([0-9]*)$`)
	suffixGroups = []struct {
		portage  string
		patterns []*regexp.Regexp
	}{
		{"_pre", []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(.*?)([._-]*dev[._-]*r?)([0-9]+)$`),
			regexp.MustCompile(`(?i)^(.*?)([._-]*(?:pre|preview)[._-]*)([0-9]*)$`),
		}},
		{"_alpha", []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(.*?)([._-]*(?:alpha|test)[._-]*)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*?)([._-]*a[._-]*)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*[^a-z])(a)([0-9]*)$`),
		}},
		{"_beta", []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(.*?)([._-]*beta[._-]*)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*?)([._-]*b)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*[^a-z])(b)([0-9]*)$`),
		}},
		{"_rc", []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(.*?)([._-]*rc[._-]*)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*?)([._-]*c[._-]*)([0-9]*)$`),
			regexp.MustCompile(`(?i)^(.*[^a-z])(c[._-]*)([0-9]+)$`),
		}},
	}
)

// ParsePV converts an upstream version into a portage PV plus the bash
// substitutions needed to reconstruct the original. Well-known schemes are
// handled: 1.0a1 -> 1.0_alpha1, 1.0b1 -> 1.0_beta1, 1.0rc2 -> 1.0_rc2,
// trailing dev/final/etc suffixes are stripped, and -r1234 style revisions
// become an extra version component. The suffix classes are tried in
// portage's chronological order (_pre, _alpha, _beta, _rc).
func ParsePV(upPV, pv string, myPV []string) (string, []string) {
	additional := ""

	if m := revSuffixRe.FindStringSubmatch(upPV); m != nil {
		upPV = m[1]
		pv = m[1]
		replaceMe := m[2]
		rev := m[3]
		additional = "." + rev
		myPV = append(myPV, fmt.Sprintf("${PV: -%d}%s", len(additional), replaceMe+rev))
	}

	matched := false
	for _, group := range suffixGroups {
		for _, re := range group.patterns {
			m := re.FindStringSubmatch(upPV)
			if m == nil {
				continue
			}
			pv = m[1] + group.portage + m[3]
			myPV = append(myPV, fmt.Sprintf("${PV/%s/%s}", group.portage, m[2]))
			matched = true
			break
		}
		if matched {
			break
		}
	}

	if !matched {
		if m := badSuffixRe.FindStringSubmatch(upPV); m != nil && m[1] != "" {
			suffix := m[1]
			myPV = append(myPV, "${PV}"+suffix)
			pv = upPV[:len(upPV)-len(suffix)]
		}
	}

	return pv + additional, myPV
}

// ParsePN converts an upstream name into a portage PN plus the bash
// substitutions needed to reconstruct the original: lowercase conversion,
// dots and spaces turned into dashes.
func ParsePN(upPN, pn string, myPN []string) (string, []string) {
	if upPN != strings.ToLower(upPN) {
		if len(myPN) == 0 {
			myPN = append(myPN, upPN)
		}
		pn = strings.ToLower(upPN)
	}

	if strings.Contains(upPN, ".") {
		myPN = append(myPN, "${PN/-/.}")
		pn = strings.ReplaceAll(upPN, ".", "-")
	}

	if strings.Contains(upPN, " ") {
		myPN = append(myPN, "${PN/-/ }")
		pn = strings.ReplaceAll(upPN, " ", "-")
	}

	return pn, myPN
}

// goodFilename reports whether the uri's file name is sane enough to
// deduce PN and PV directly.
func goodFilename(uri string) bool {
	if !IsValidURI(uri) {
		return false
	}
	pn, _, _, ok := SplitURI(uri)
	return ok && pn == strings.ToLower(pn)
}

// components splits uri into a ${P}-substituted SRC_URI plus pn and pv.
func components(uri string) (srcURI, pn, pv string) {
	p := Filename(uri)
	name, version, _, _ := pkgSplit(p)
	return strings.ReplaceAll(uri, p, "${P}"), strings.ToLower(name), version
}

// guessComponents tries to break a raw MY_P into pn and pv.
func guessComponents(myP string) (pn, pv string) {
	name, version, _, ok := pkgSplit(strings.ReplaceAll(myP, "_", "-"))
	if !ok {
		return "", ""
	}
	return name, version
}

// srcURIVars derives SRC_URI, MY_P and MY_PN for uris whose file name does
// not match the final P directly.
func srcURIVars(uri string, myPN []string) (srcURI, myP string, outPN []string, myPRaw string) {
	if goodFilename(uri) {
		srcURI, _, _ = components(uri)
		return srcURI, "", myPN, ""
	}

	srcURI, myP = MyP(uri)
	pn, pv := guessComponents(myP)
	if pn != "" && pv != "" {
		myPRaw = myP
		pn, myPN = ParsePN(pn, "", myPN)
		if len(myPN) > 0 {
			for _, sub := range myPN {
				myP = strings.ReplaceAll(myP, sub, "${MY_PN}")
			}
		} else {
			myP = strings.ReplaceAll(myP, pn, "${PN}")
		}
		myP = strings.ReplaceAll(myP, pv, "${PV}")
	}
	return srcURI, myP, myPN, myPRaw
}

// GetVars determines the P* and MY_* ebuild variables for a package given
// its download uri and upstream name/version. User overrides win over
// derivation. An unparseable name/version combination is an error.
func GetVars(uri, upPN, upPV string, o Overrides) (*Vars, error) {
	uri = SanitizeURI(uri)
	pn, pv := o.PN, o.PV
	myPN := append([]string(nil), o.MyPN...)
	myPV := append([]string(nil), o.MyPV...)

	// Portage reserves -r suffixes for ebuild revisions, so upstream
	// versions carrying one must be rewritten.
	invalid := false
	tail := upPV[strings.LastIndex(upPV, "-")+1:]
	if strings.HasPrefix(tail, "r") {
		invalid = true
	}
	if !IsValidAtom(fmt.Sprintf("=dev-python/%s-%s", upPN, upPV)) {
		invalid = true
	}

	if invalid {
		pv, myPV = ParsePV(upPV, pv, myPV)
	}
	pn, myPN = ParsePN(upPN, pn, myPN)

	switch {
	case pn == "" && pv == "":
		if name, version, _, ok := SplitURI(uri); ok {
			pn, pv = name, version
		} else {
			pn, pv = upPN, upPV
		}
	case pn != "" && pv == "":
		pv = upPV
	case pn == "":
		pn = upPN
	}

	p := fmt.Sprintf("%s-%s", pn, pv)
	if !IsValidAtom(fmt.Sprintf("=dev-python/%s", p)) {
		return nil, fmt.Errorf("%s is not a valid portage atom, could not determine it from upstream pn(%s) and pv(%s)",
			p, upPN, upPV)
	}

	srcURI, myPRaw := MyP(uri)
	myP := ""
	switch {
	case o.MyP != "":
		// A user-supplied MY_P wins over derivation and keeps the
		// ${MY_P} substitution in SRC_URI.
		myP = o.MyP
	case myPRaw == p:
		myPN = nil
		myPRaw = ""
		srcURI = strings.ReplaceAll(srcURI, "${MY_P}", "${P}")
	case len(myPN) == 0 && len(myPV) == 0:
		srcURI, myP, myPN, myPRaw = srcURIVars(uri, myPN)
	}

	if o.MyP == "" && (len(myPN) > 0 || len(myPV) > 0) {
		pnVar, pvVar := "${PN}", "${PV}"
		if len(myPN) > 0 {
			pnVar = "${MY_PN}"
		}
		if len(myPV) > 0 {
			pvVar = "${MY_PV}"
		}
		myP = fmt.Sprintf("%s-%s", pnVar, pvVar)
	}

	return &Vars{
		PN:     pn,
		PV:     pv,
		P:      p,
		MyPN:   myPN,
		MyPV:   myPV,
		MyP:    myP,
		MyPRaw: myPRaw,
		SrcURI: srcURI,
	}, nil
}
