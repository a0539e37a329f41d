package charhop

import (
	"bytes"
	"fmt"
	"os"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// CLIOptions are the command line options for the bundled viewer.
type CLIOptions struct {
	OptHelp            bool   `short:"h" long:"help" description:"show this help message and exit"`
	OptRcfile          string `long:"rcfile" description:"path to the settings file"`
	OptTimeout         int    `long:"timeout" default:"-1" description:"selection timeout in milliseconds (-1 keeps the configured value)"`
	OptNoJumpOnTrigger bool   `long:"no-jump-on-trigger" description:"do not move to the first match immediately"`
	OptNoWordJump      bool   `long:"no-word-jump" description:"match every occurrence, not just word starts"`
	OptVersion         bool   `long:"version" description:"print the version and exit"`
}

func (options *CLIOptions) parse(s []string) ([]string, error) {
	p := flags.NewParser(options, flags.PrintErrors)
	args, err := p.ParseArgs(s)
	if err != nil {
		os.Stderr.Write(options.help())
		return nil, errors.Wrap(err, "invalid command line options")
	}

	if err := options.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid command line arguments")
	}

	return args, nil
}

// Validate checks the parsed options for consistency.
func (options CLIOptions) Validate() error {
	if options.OptTimeout < -1 {
		return errors.Errorf("invalid timeout %d: must be >= 0 (or -1 to keep the configured value)", options.OptTimeout)
	}
	return nil
}

func (options CLIOptions) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: charhop [options] FILE

Options:
`)

	t := reflect.TypeOf(options)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var o string
		if s := tag.Get("short"); s != "" {
			o = fmt.Sprintf("-%s, --%s", tag.Get("short"), tag.Get("long"))
		} else {
			o = fmt.Sprintf("--%s", tag.Get("long"))
		}

		fmt.Fprintf(
			&buf,
			"  %-21s %s\n",
			o,
			tag.Get("description"),
		)
	}

	return buf.Bytes()
}
