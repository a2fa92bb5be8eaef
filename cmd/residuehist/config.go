package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/basicflag"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/viniciusth/residuehist"
	"github.com/viniciusth/residuehist/internal/logger"
	"github.com/viniciusth/residuehist/report"
	"golang.org/x/text/language"
)

const configDelimiter = "."

var defaults = map[string]interface{}{
	"n":             31571,
	"mode":          "square",
	"base":          residuehist.DefaultBase,
	"length":        0,
	"width":         report.DefaultWidth,
	"pad":           false,
	"capacity":      residuehist.DefaultCapacity,
	"overflow":      "count",
	"dump":          true,
	"lang":          "en",
	logger.LevelKey: "INFO",
	"cpuprofile":    "",
	"expand":        "",
}

type options struct {
	modulus    int
	mode       residuehist.Mode
	base       int64
	length     int
	width      int
	capacity   int
	policy     residuehist.OverflowPolicy
	dump       bool
	lang       language.Tag
	cpuprofile string
	// expand is nil unless a number to expand in base was given.
	expand *big.Int
}

func newFlagSet(stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("residuehist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Int("n", defaults["n"].(int), "Modulus N")
	fs.String("mode", defaults["mode"].(string), "Generator: square or multiplicative")
	fs.Int64("base", int64(defaults["base"].(int)), "Base B for the multiplicative generator")
	fs.Int("length", defaults["length"].(int), "Sequence length L, 0 means N")
	fs.Int("width", defaults["width"].(int), "Values per printed row")
	fs.Bool("pad", defaults["pad"].(bool), "Generate N+width-1 values when length is 0")
	fs.Int("capacity", defaults["capacity"].(int), "Histogram capacity K")
	fs.String("overflow", defaults["overflow"].(string), "Overflow policy: count, clamp, grow or abort")
	fs.Bool("dump", defaults["dump"].(bool), "Print the sequence and occurrence grids")
	fs.String("lang", defaults["lang"].(string), "Language used to format numbers")
	fs.String(logger.LevelKey, defaults[logger.LevelKey].(string), "Log level")
	fs.String("cpuprofile", defaults["cpuprofile"].(string), "Write CPU profile to file")
	fs.String("expand", defaults["expand"].(string), "Decimal number to print as base-B coefficients")
	return fs
}

// loadConfig layers the parsed flags over the defaults.
func loadConfig(args []string, stderr io.Writer) (*koanf.Koanf, error) {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	k := koanf.New(configDelimiter)
	if err := k.Load(confmap.Provider(defaults, configDelimiter), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(basicflag.Provider(fs, configDelimiter), nil); err != nil {
		return nil, fmt.Errorf("loading flags: %w", err)
	}
	return k, nil
}

func parseOptions(k *koanf.Koanf) (options, error) {
	mode, err := residuehist.ParseMode(k.String("mode"))
	if err != nil {
		return options{}, err
	}
	policy, err := residuehist.ParseOverflowPolicy(k.String("overflow"))
	if err != nil {
		return options{}, err
	}
	tag, err := language.Parse(k.String("lang"))
	if err != nil {
		return options{}, fmt.Errorf("parsing lang: %w", err)
	}

	opts := options{
		modulus:    k.Int("n"),
		mode:       mode,
		base:       k.Int64("base"),
		length:     k.Int("length"),
		width:      k.Int("width"),
		capacity:   k.Int("capacity"),
		policy:     policy,
		dump:       k.Bool("dump"),
		lang:       tag,
		cpuprofile: k.String("cpuprofile"),
	}
	if v := k.String("expand"); v != "" {
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return options{}, fmt.Errorf("parsing expand: %q is not a decimal integer", v)
		}
		opts.expand = n
	}
	if opts.width < 1 {
		return options{}, fmt.Errorf("width must be positive, got %d", opts.width)
	}
	if opts.length == 0 {
		opts.length = opts.modulus
		if k.Bool("pad") {
			opts.length += opts.width - 1
		}
	}
	return opts, nil
}
