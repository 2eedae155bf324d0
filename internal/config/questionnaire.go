package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/slchris/gpypi/internal/output"
)

// maxAttempts bounds how many invalid answers a single Ask tolerates
// before giving up. An interactive user never hits the cap; a
// non-interactive input stream terminates deterministically.
const maxAttempts = 8

// Questionnaire asks for option values interactively when no configured
// source supplies them.
type Questionnaire struct {
	in        *bufio.Reader
	out       io.Writer
	helpShown bool
}

// NewQuestionnaire creates a Questionnaire reading answers from in and
// writing prompts to out.
func NewQuestionnaire(in io.Reader, out io.Writer) *Questionnaire {
	return &Questionnaire{in: bufio.NewReader(in), out: out}
}

// Ask prompts for the named option and returns the validated answer.
// Empty input substitutes the schema default. Invalid answers are reported
// and the question repeats, up to maxAttempts.
func (q *Questionnaire) Ask(name Option) (interface{}, error) {
	spec, ok := allowedOptions[name]
	if !ok {
		return nil, newConfigurationError("no such option in schema: %s", name)
	}

	if !q.helpShown {
		q.printHelp()
	}

	prompt := fmt.Sprintf("%s%s%s%v%s: ",
		output.Colorize(output.StyleGood, " * "),
		spec.Prompt,
		output.Colorize(output.StyleBracket, " ["),
		spec.Default,
		output.Colorize(output.StyleBracket, "]"))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprint(q.out, prompt)

		line, err := q.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
		if err == io.EOF && line == "" {
			return nil, fmt.Errorf("input closed while asking for option %q", name)
		}

		var answer interface{} = strings.TrimSpace(line)
		if answer == "" {
			answer = spec.Default
		}

		value, verr := Validate(name, answer)
		if verr != nil {
			output.EError(q.out, "%v", verr)
			continue
		}
		return value, nil
	}

	return nil, fmt.Errorf("no valid answer for option %q after %d attempts", name, maxAttempts)
}

// printHelp emits the interactive-mode banner once per Questionnaire.
func (q *Questionnaire) printHelp() {
	output.EInfo(q.out, "You are using interactive mode for configuration.")
	output.EInfo(q.out, "Answer questions with a configuration value or press enter")
	output.EInfo(q.out, "to use the default value printed in brackets.")
	q.helpShown = true
}
