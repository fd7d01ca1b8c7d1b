package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"lutgrad/apply"
	"lutgrad/generate"
	"lutgrad/gradient"
	"lutgrad/imageio"
	"lutgrad/lut"
	"lutgrad/parallel"
)

type CLI struct {
	Workers  int        `help:"Worker goroutines, 0 for one per CPU" default:"0" short:"j"`
	LogLevel slog.Level `help:"Minimum log level: debug, info, warn or error" default:"info"`
	LogJSON  bool       `help:"Log as JSON instead of text" name:"log-json"`

	Apply    apply.CLICmd    `cmd:"" help:"Grade every picture in a folder through a 3D LUT"`
	Generate generate.CLICmd `cmd:"" help:"Sample a preset transform into a 3D LUT file"`
	Gradient gradient.CLICmd `cmd:"" help:"Compute the LUT gradient of the error between graded sources and targets"`
}

var cli CLI

func newParser(c *CLI) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("lutgrad"),
		kong.Description("Apply, generate and differentiate 3D color LUTs."),
		kong.UsageOnError(),
		kong.Vars{"formats": strings.Join(imageio.Formats, ",")},
	)
}

func setupLogging() {
	opts := &slog.HandlerOptions{Level: cli.LogLevel}
	var handler slog.Handler
	if cli.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	lut.SetLogger(slog.Default().With("pkg", "lut"))
}

func main() {
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	setupLogging()

	pool := parallel.Start(cli.Workers)
	defer pool.Close()

	slog.Debug("running", "command", kctx.Command(), "workers", pool.Size())

	err = kctx.Run(pool)
	pool.Close()
	kctx.FatalIfErrorf(err)
}
