package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/combine"
	"github.com/clipsheep6/ability-runtime-sub005/compiler/format"
	"github.com/clipsheep6/ability-runtime-sub005/compiler/parse"
)

type (
	Options struct {
		// Sweeps is the max number of combine sweeps.
		// Optimization stops earlier if a sweep changed nothing.
		Sweeps int

		// Origin adds creation site comments to the output.
		Origin bool
	}
)

func OptimizeFile(ctx context.Context, name string, opts Options) (res []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Optimize(ctx, name, text, opts)
}

// Optimize parses a gate listing, runs combine sweeps over it and prints the result.
func Optimize(ctx context.Context, name string, text []byte, opts Options) (res []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "optimize", "name", name, "sweeps", opts.Sweeps)
	defer tr.Finish("err", &err)

	f, err := parse.Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	g, err := Load(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}

	err = g.Verify()
	if err != nil {
		return nil, errors.Wrap(err, "verify loaded graph")
	}

	c := combine.New(ctx, g)

	for i := 0; i < opts.Sweeps; i++ {
		changed := c.Sweep(ctx)

		tr.V("sweep").Printw("sweep", "i", i, "changed", changed, "gates", g.Len())

		if changed == 0 {
			break
		}
	}

	err = g.Verify()
	if err != nil {
		return nil, errors.Wrap(err, "verify optimized graph")
	}

	res, err = format.Graph(ctx, nil, g, format.Options{Origin: opts.Origin})
	if err != nil {
		return nil, errors.Wrap(err, "format")
	}

	return res, nil
}
