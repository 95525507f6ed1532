package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "load and print listings without optimizing",
		Action:      parseAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	optCmd := &cli.Command{
		Name:        "opt",
		Description: "optimize listings",
		Action:      optAct,
		Args:        cli.Args{},
		Flags: append(flags(),
			cli.NewFlag("sweeps", 1, "max combine sweeps"),
		),
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "optimize listings typed in, each ends with ret or an empty line",
		Action:      replAct,
		Flags: append(flags(),
			cli.NewFlag("sweeps", 1, "max combine sweeps"),
		),
	}

	app := &cli.Command{
		Name:        "icomb",
		Description: "icomb is an instruction combiner for gate listings",
		Commands: []*cli.Command{
			parseCmd,
			optCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func flags() []*cli.Flag {
	return []*cli.Flag{
		cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
		cli.NewFlag("origin", false, "print where each gate was created"),
	}
}

func parseAct(c *cli.Command) error {
	return run(c, compiler.Options{Origin: c.Bool("origin")})
}

func optAct(c *cli.Command) error {
	return run(c, compiler.Options{
		Sweeps: c.Int("sweeps"),
		Origin: c.Bool("origin"),
	})
}

func run(c *cli.Command, opts compiler.Options) (err error) {
	ctx := setup(c)

	for _, a := range c.Args {
		res, err := compiler.OptimizeFile(ctx, a, opts)
		if err != nil {
			return errors.Wrap(err, "optimize %v", a)
		}

		fmt.Printf("%s", res)
	}

	return nil
}

func setup(c *cli.Command) context.Context {
	tlog.SetVerbosity(c.String("verbosity"))

	ctx := context.Background()

	return tlog.ContextWithSpan(ctx, tlog.Root())
}

func replAct(c *cli.Command) (err error) {
	ctx := setup(c)

	opts := compiler.Options{
		Sweeps: c.Int("sweeps"),
		Origin: c.Bool("origin"),
	}

	rl, err := readline.New("> ")
	if err != nil {
		return errors.Wrap(err, "readline")
	}

	defer func() {
		e := rl.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close readline")
		}
	}()

	var buf []byte
	n := 0

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = buf[:0]
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}

		trim := strings.TrimSpace(line)

		if trim != "" {
			buf = append(buf, line...)
			buf = append(buf, '\n')
		}

		if len(buf) == 0 || trim != "" && !isRet(trim) {
			continue
		}

		n++

		res, err := compiler.Optimize(ctx, fmt.Sprintf("repl%d", n), buf, opts)
		buf = buf[:0]

		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
			continue
		}

		fmt.Fprintf(rl.Stdout(), "%s", res)
	}
}

func isRet(line string) bool {
	return line == "ret" || strings.HasPrefix(line, "ret ") || strings.HasPrefix(line, "ret\t")
}
