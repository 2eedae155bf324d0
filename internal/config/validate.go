package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var truthy = map[string]bool{"true": true, "yes": true, "on": true, "y": true, "t": true, "1": true}
var falsy = map[string]bool{"false": true, "no": true, "off": true, "n": true, "f": true, "0": true}

// ValidateBool converts value into a boolean. Strings are matched
// case-insensitively against the usual truthy/falsy tokens; native bools
// pass through unchanged.
func ValidateBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		token := strings.ToLower(strings.TrimSpace(v))
		if truthy[token] {
			return true, nil
		}
		if falsy[token] {
			return false, nil
		}
		return false, &ValidationError{Value: value, Reason: "not a boolean (write y/n)"}
	default:
		return false, &ValidationError{Value: value, Reason: "not a boolean (write y/n)"}
	}
}

// ValidateString accepts text and rejects everything else. The text must
// be valid UTF-8.
func ValidateString(value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{Value: value, Reason: "not a string"}
	}
	if !utf8.ValidString(s) {
		return "", &ValidationError{Value: value, Reason: "not valid UTF-8"}
	}
	return s, nil
}

// kindValidators is the fixed dispatch table from value kind to validator,
// resolved once at schema-definition time.
var kindValidators = map[Kind]func(interface{}) (interface{}, error){
	KindBool: func(v interface{}) (interface{}, error) {
		b, err := ValidateBool(v)
		if err != nil {
			return nil, err
		}
		return b, nil
	},
	KindString: func(v interface{}) (interface{}, error) {
		s, err := ValidateString(v)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// Validate parses value according to the kind the schema declares for
// name. Unknown options yield a ConfigurationError; an unknown kind in the
// schema is a programming error.
func Validate(name Option, value interface{}) (interface{}, error) {
	spec, ok := allowedOptions[name]
	if !ok {
		return nil, newConfigurationError("no such option in schema: %s", name)
	}
	validator, ok := kindValidators[spec.Kind]
	if !ok {
		panic(fmt.Sprintf("config: no validator for kind %v", spec.Kind))
	}
	parsed, err := validator(value)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Option = name
		}
		return nil, err
	}
	return parsed, nil
}
