package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"epaperframe/pkg/device/file"
	"epaperframe/pkg/device/uart"
	"epaperframe/pkg/device/virtual"
	"epaperframe/pkg/frame"
	"epaperframe/pkg/mixer"
	"epaperframe/pkg/preview"
	"epaperframe/pkg/proto"
	"epaperframe/pkg/source"
)

var withDithering = flag.Bool("with-dithering", false, "apply Floyd-Steinberg dithering when reducing to the panel palette, helps with portraits")
var showProcessed = flag.Bool("show-processed-image", false, "open the final image prepared for the display")
var debug = flag.Bool("debug", false, "print debug logs")
var noUpscale = flag.Bool("no-upscale", false, "never scale the picture up")
var fit = flag.Bool("fit", false, "scale by screen/picture ratio, keeping the aspect ratio")
var atomic = flag.Bool("atomic", false, "write the output through a temp file and rename it")
var progress = flag.Bool("progress", false, "show progress bars")
var serial = flag.String("serial", "", "send the frame to the serial port matching this name instead of a file")
var baud = flag.Int("baud", uart.DefaultBaudRate, "serial baud rate")
var dryRun = flag.Bool("dry-run", false, "log the frame instead of writing it")
var tmpDir = flag.String("tmp", os.TempDir(), "directory for preview images")

type params struct {
	input  string
	output string
}

// parseArgs takes INPUT, plus OUTPUT when the frame goes to a file.
func parseArgs(args []string, toFile bool) (params, error) {
	want := lo.Ternary(toFile, 2, 1)
	switch {
	case len(args) < want:
		return params{}, errors.New("missing arguments")
	case len(args) > want && !toFile:
		return params{}, errors.Errorf("unexpected OUTPUT %q with --serial or --dry-run", args[1])
	case len(args) > want:
		return params{}, errors.Errorf("unexpected arguments %v", args[want:])
	}

	p := params{input: args[0]}
	if toFile {
		p.output = args[1]
	}
	return p, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] INPUT OUTPUT\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Converts INPUT (path or http(s) URL) into a raw frame for the 7.3\" 7-color e-paper panel.")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lo.Ternary(*debug, zap.DebugLevel, zap.InfoLevel))
	return cfg.Build()
}

func newFrame(logger *zap.Logger) (*frame.Frame, error) {
	opts := []frame.Option{
		frame.WithDithering(*withDithering),
		frame.WithPolicy(lo.Ternary(*fit, mixer.ScaleFit, mixer.ScaleRatio)),
	}
	if *noUpscale {
		opts = append(opts, frame.WithoutUpscale())
	}
	return frame.New(logger, opts...)
}

func newLoader(fs afero.Fs, logger *zap.Logger) *source.Loader {
	var opts []source.Option
	if *progress {
		opts = append(opts, source.WithProgress())
	}
	return source.NewLoader(fs, logger, opts...)
}

func newSink(p params, fs afero.Fs, logger *zap.Logger) proto.Sink {
	switch {
	case *dryRun:
		return virtual.Mock(logger)
	case *serial != "":
		opts := []uart.Option{uart.WithBaudRate(*baud)}
		if *progress {
			opts = append(opts, uart.WithProgress())
		}
		return uart.New(proto.NewSerial(*serial), logger, opts...)
	}

	var opts []file.Option
	if *atomic {
		opts = append(opts, file.WithAtomic())
	}
	if *progress {
		opts = append(opts, file.WithProgress())
	}
	return file.New(fs, p.output, logger, opts...)
}

func run(p params, loader *source.Loader, f *frame.Frame, sink proto.Sink, logger *zap.Logger) error {
	r := frame.NewRunner(loader, f, sink, logger)

	if *showProcessed {
		tmp, err := preview.NewTmpFs(*tmpDir)
		if err != nil {
			return err
		}
		r.SetViewer(preview.NewViewer(tmp, logger))
	}

	return r.Run(p.input, *showProcessed)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	p, err := parseArgs(flag.Args(), *serial == "" && !*dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			if *debug {
				return &fxevent.ZapLogger{Logger: logger}
			}
			return fxevent.NopLogger
		}),
		fx.Supply(p, logger),
		fx.Provide(
			afero.NewOsFs,
			newLoader,
			newFrame,
			newSink,
		),
		fx.Invoke(run),
	)

	if err := app.Err(); err != nil {
		logger.With(zap.Error(err)).Error("conversion failed")
		_ = logger.Sync()
		os.Exit(1)
	}
}
