// Package config implements layered configuration for ebuild generation.
//
// Values are resolved across named sources (PyPI metadata, setup-script
// keywords, command-line flags, an ini file) in a caller-defined priority
// order, with an interactive questionnaire as the last resort before the
// schema default.
package config

// Option identifies a configuration option known to the schema.
type Option string

// Options supported by the schema.
const (
	OptPN         Option = "pn"
	OptPV         Option = "pv"
	OptMyPN       Option = "my_pn"
	OptMyPV       Option = "my_pv"
	OptMyP        Option = "my_p"
	OptURI        Option = "uri"
	OptIndexURL   Option = "index_url"
	OptOverlay    Option = "overlay"
	OptOverwrite  Option = "overwrite"
	OptNoDeps     Option = "no_deps"
	OptCategory   Option = "category"
	OptFormat     Option = "format"
	OptPackage    Option = "package"
	OptVersion    Option = "version"
	OptCommand    Option = "command"
	OptNoColors   Option = "nocolors"
	OptBackground Option = "background"

	OptMetadataDisable           Option = "metadata_disable"
	OptMetadataHerd              Option = "metadata_herd"
	OptMetadataMaintainerName    Option = "metadata_maintainer_name"
	OptMetadataMaintainerEmail   Option = "metadata_maintainer_email"
	OptMetadataMaintainerDesc    Option = "metadata_maintainer_description"
	OptMetadataUseEchangelogUser Option = "metadata_use_echangelog_user"
	OptEchangelogDisable         Option = "echangelog_disable"
	OptEchangelogMessage         Option = "echangelog_message"
	OptRepomanCommands           Option = "repoman_commands"
)

// Kind is the value kind of an option.
type Kind int

// Supported option kinds.
const (
	KindBool Kind = iota
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Spec describes a single schema entry: the interactive prompt, the value
// kind and the default used when no source supplies a value.
type Spec struct {
	Prompt  string
	Kind    Kind
	Default interface{}
}

// allowedOptions is the process-wide option schema. It is defined once and
// never mutated.
var allowedOptions = map[Option]Spec{
	OptPN:         {"Specify PN to use when naming ebuild", KindString, ""},
	OptPV:         {"Specify PV to use when naming ebuild", KindString, ""},
	OptMyPV:       {"Specify MY_PV used in ebuild", KindString, ""},
	OptMyPN:       {"Specify MY_PN used in ebuild", KindString, ""},
	OptMyP:        {"Specify MY_P used in ebuild", KindString, ""},
	OptURI:        {"Specify SRC_URI of the package", KindString, ""},
	OptIndexURL:   {"Base URL for PyPI", KindString, "https://pypi.org/pypi"},
	OptOverlay:    {"Specify overlay to use by name (stored in $OVERLAY/profiles/repo_name)", KindString, "local"},
	OptOverwrite:  {"Overwrite existing ebuild", KindBool, false},
	OptNoDeps:     {"Don't create ebuilds for any needed dependencies", KindBool, false},
	OptCategory:   {"Specify portage category to use when creating ebuild", KindString, "dev-python"},
	OptFormat:     {"Format when printing to stdout", KindString, "none"},
	OptPackage:    {"Package name for ebuild actions", KindString, ""},
	OptVersion:    {"Package version for ebuild actions", KindString, ""},
	OptCommand:    {"Name of command that was invoked on CLI", KindString, ""},
	OptNoColors:   {"Disable colorful output", KindBool, false},
	OptBackground: {"Background of terminal when using formatting", KindString, "dark"},

	OptMetadataDisable:           {"Skip metadata.xml generation", KindBool, false},
	OptMetadataHerd:              {"Comma-separated herds for metadata.xml", KindString, ""},
	OptMetadataMaintainerName:    {"Comma-separated maintainer names for metadata.xml", KindString, ""},
	OptMetadataMaintainerEmail:   {"Comma-separated maintainer emails for metadata.xml", KindString, ""},
	OptMetadataMaintainerDesc:    {"Comma-separated maintainer descriptions for metadata.xml", KindString, ""},
	OptMetadataUseEchangelogUser: {"Take maintainer identity from the ECHANGELOG_USER variable", KindBool, false},
	OptEchangelogDisable:         {"Skip echangelog invocation", KindBool, false},
	OptEchangelogMessage:         {"Message used for the echangelog entry", KindString, "New ebuild generated by gpypi"},
	OptRepomanCommands:           {"Commands passed to repoman", KindString, "manifest"},
}

// LookupOption returns the schema entry for name.
func LookupOption(name Option) (Spec, bool) {
	spec, ok := allowedOptions[name]
	return spec, ok
}
