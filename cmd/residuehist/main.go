package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/viniciusth/residuehist"
	"github.com/viniciusth/residuehist/internal/logger"
	"github.com/viniciusth/residuehist/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	k, err := loadConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if err := logger.InitLogger(k, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	opts, err := parseOptions(k)
	if err != nil {
		log.Error().Err(err).Msg("invalid options")
		return 2
	}

	var coeffs []int64
	if opts.expand != nil {
		coeffs, err = residuehist.BaseExpansion(opts.expand, opts.base)
		if err != nil {
			log.Error().Err(err).Msg("invalid expansion")
			return 2
		}
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	builder := residuehist.NewBuilder(opts.modulus).
		Mode(opts.mode).
		Length(opts.length).
		Capacity(opts.capacity).
		Overflow(opts.policy)
	if opts.mode == residuehist.ModeMultiplicative {
		builder = builder.Multiplicative(opts.base)
	}
	if opts.dump {
		builder = builder.KeepSequence()
	}
	pipeline, err := builder.Build()
	if err != nil {
		log.Error().Err(err).Msg("invalid pipeline")
		return 1
	}

	start := time.Now()
	res, err := pipeline.Run()
	if err != nil {
		log.Error().Err(err).Str("stage", pipeline.Stage().String()).Msg("pipeline failed")
		return 1
	}
	log.Debug().
		Int("modulus", res.Modulus).
		Int("length", res.Length).
		Stringer("mode", res.Mode).
		Dur("elapsed", time.Since(start)).
		Msg("histogram built")

	renderer := report.New(opts.width, opts.lang)
	if !opts.dump {
		renderer = renderer.SkipDump()
	}
	err = pipeline.Report(func(res *residuehist.Result) error {
		if err := renderer.Render(stdout, res); err != nil {
			return err
		}
		if coeffs == nil {
			return nil
		}
		return renderer.Expansion(stdout, opts.expand, opts.base, coeffs)
	})
	if err != nil {
		log.Error().Err(err).Msg("report failed")
		return 1
	}
	return 0
}
