package enamer

import "strings"

const licensePrefix = "License :: "

// knownLicenses maps PyPI license classifiers to portage license names.
var knownLicenses = map[string]string{
	"Academic Free License (AFL)":                        "AFL-3.0",
	"Aladdin Free Public License (AFPL)":                 "Aladdin",
	"Apache Software License":                            "Apache-2.0",
	"Apple Public Source License":                        "Apple",
	"Artistic License":                                   "Artistic-2",
	"BSD License":                                        "BSD-2",
	"Common Public License":                              "CPL-1.0",
	"GNU Affero General Public License v3":               "AGPL-3",
	"GNU Free Documentation License (FDL)":               "FDL-3",
	"GNU General Public License (GPL)":                   "GPL-2",
	"GNU Library or Lesser General Public License (LGPL)": "LGPL-2.1",
	"IBM Public License":                                 "IBM",
	"Intel Open Source License":                          "Intel",
	"ISC License (ISCL)":                                 "ISC",
	"MIT License":                                        "MIT",
	"Mozilla Public License 1.0 (MPL)":                   "MPL",
	"Mozilla Public License 1.1 (MPL 1.1)":               "MPL-1.1",
	"Nethack General Public License":                     "nethack",
	"Netscape Public License (NPL)":                      "NPL-1.1",
	"Open Group Test Suite License":                      "OGTSL",
	"Public Domain":                                      "public-domain",
	"Python License (CNRI Python License)":               "CNRI",
	"Python Software Foundation License":                 "PSF-2.4",
	"Qt Public License (QPL)":                            "QPL",
	"Repoze Public License":                              "repoze",
	"Sleepycat License":                                  "DB",
	"Sun Public License":                                 "SPL",
	"University of Illinois/NCSA Open Source License":    "ncsa-1.3",
	"W3C License":                                        "WC3",
	"zlib/libpng License":                                "ZLIB",
	"Zope Public License":                                "ZPL",
}

// guessLicenses resolves common license families named free-form in
// setup.py metadata.
var guessLicenses = []struct {
	substring string
	license   string
}{
	{"LGPL", "LGPL-2.1"},
	{"GPL", "GPL-2"},
}

// ConvertLicense maps a PyPI license classifier to a portage license name.
// When no classifier matches, the free-form setup license is used for a
// best-effort guess and otherwise returned as-is.
func ConvertLicense(classifiers []string, setupLicense string) string {
	classifier := ""
	for _, line := range classifiers {
		if strings.HasPrefix(line, licensePrefix) {
			classifier = line
		}
	}

	parts := strings.Split(classifier, ":: ")
	name := parts[len(parts)-1]

	if license, ok := knownLicenses[name]; ok {
		return license
	}

	for _, guess := range guessLicenses {
		if strings.Contains(setupLicense, guess.substring) {
			return guess.license
		}
	}
	return setupLicense
}
