package charhop

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/charhop/charhop/config"
	"github.com/charhop/charhop/ui"
)

const version = "v0.1.0"

// CLI is the entry point used by cmd/charhop. It wires the bundled
// tcell viewer to the jump engine.
type CLI struct{}

// Run parses args, loads configuration, and runs the viewer over the
// given file until the user quits.
func (cli CLI) Run(ctx context.Context, args []string) error {
	var opts CLIOptions
	rest, err := opts.parse(args)
	if err != nil {
		return err
	}

	if opts.OptHelp {
		os.Stdout.Write(opts.help())
		return nil
	}
	if opts.OptVersion {
		fmt.Fprintf(os.Stdout, "charhop version %s\n", version)
		return nil
	}

	cfg := config.New()
	if opts.OptRcfile != "" {
		if err := cfg.ReadFilename(opts.OptRcfile); err != nil {
			return err
		}
	}
	if opts.OptTimeout >= 0 {
		cfg.Timeout = opts.OptTimeout
	}
	if opts.OptNoJumpOnTrigger {
		cfg.JumpOnTrigger = false
	}
	if opts.OptNoWordJump {
		cfg.WordJump = false
	}

	if len(rest) != 1 {
		os.Stderr.Write(opts.help())
		return errors.New("expected exactly one FILE argument")
	}

	lines, err := readLines(rest[0])
	if err != nil {
		return err
	}

	viewer := ui.New(lines, cfg)
	if err := viewer.Init(); err != nil {
		return err
	}
	defer viewer.Close()

	return viewer.Run(ctx, New(viewer, cfg))
}

func readLines(filename string) ([]string, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}
	lines := strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
	return lines, nil
}
