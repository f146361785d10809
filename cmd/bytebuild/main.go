package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/codec"
	"github.com/dd0wney/bytebuilder/pkg/config"
	"github.com/dd0wney/bytebuilder/pkg/format"
	"github.com/dd0wney/bytebuilder/pkg/logging"
	"github.com/dd0wney/bytebuilder/pkg/metrics"
	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

// Rendering modes
const (
	modeRaw    = "raw"
	modeQuote  = "quote"
	modeEscape = "escape"
	modeJSON   = "json"
)

type options struct {
	configPath  string
	mode        string
	quote       string
	htmlSafe    bool
	fixed       int
	withID      bool
	compress    bool
	dumpMetrics bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("bytebuild: %v", err)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("bytebuild", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	fs.StringVar(&opts.mode, "mode", modeRaw, "Rendering: raw, quote, escape or json")
	fs.StringVar(&opts.quote, "quote", `"`, "Quote character for quote and escape modes")
	fs.BoolVar(&opts.htmlSafe, "html-safe", false, "Also escape <, > and &")
	fs.IntVar(&opts.fixed, "fixed", 0, "Render each line into a borrowed buffer of N bytes")
	fs.BoolVar(&opts.withID, "id", false, "Prefix each line with a random UUID")
	fs.BoolVar(&opts.compress, "compress", false, "Write output in the snappy framing format")
	fs.BoolVar(&opts.dumpMetrics, "metrics", false, "Write Prometheus metrics to stderr at exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.mode {
	case modeRaw, modeQuote, modeEscape, modeJSON:
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
	if len(opts.quote) != 1 {
		return nil, fmt.Errorf("-quote must be a single byte, got %q", opts.quote)
	}
	if opts.fixed < 0 {
		return nil, fmt.Errorf("-fixed must not be negative, got %d", opts.fixed)
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	start := time.Now()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	instrumented := cfg.Metrics || opts.dumpMetrics

	alloc, err := cfg.NewAllocator()
	if err != nil {
		return err
	}
	allocName := pools.Name(alloc)
	if instrumented {
		alloc = reg.Instrument(alloc, allocName)
	}

	var line *builder.Builder
	if opts.fixed > 0 {
		line = builder.FromBytes(make([]byte, opts.fixed))
	} else if line, err = cfg.NewBuilder(alloc); err != nil {
		return err
	}
	defer line.Release()

	var logger logging.Logger = logging.NewJSONLogger(stderr, cfg.Level())
	logger = logger.With(
		logging.Component("bytebuild"),
		logging.Allocator(allocName),
		logging.Mode(line.Fixed()),
	)

	var out stream.Stream = line
	if instrumented {
		out = reg.Stream(line)
	}

	sink := stream.FromWriter(stdout)
	var framed *codec.FramedWriter
	if opts.compress {
		framed = codec.NewFramedWriter(sink)
		sink = framed
	}

	r := renderer{
		mode:     opts.mode,
		quote:    opts.quote[0],
		htmlSafe: opts.htmlSafe,
		withID:   opts.withID,
	}

	scanner := bufio.NewScanner(stdin)
	lines, truncated := 0, 0
	for scanner.Scan() {
		lines++
		line.Reset()

		err := r.render(out, scanner.Text())
		switch {
		case errors.Is(err, stream.ErrFull):
			truncated++
			logger.Warn("line truncated",
				logging.Int("line", lines),
				logging.Bytes("input_bytes", len(scanner.Bytes())),
				logging.Bytes("kept_bytes", line.Len()),
			)
		case err != nil:
			return fmt.Errorf("line %d: %w", lines, err)
		}

		if _, err := sink.Write(line.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if err := sink.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if framed != nil {
		if err := framed.Close(); err != nil {
			return fmt.Errorf("flush compressed output: %w", err)
		}
	}

	logger.Info("done",
		logging.Count(lines),
		logging.Int("truncated", truncated),
		logging.Int64("output_bytes", sink.Size()),
		logging.Latency(time.Since(start)),
	)

	if opts.dumpMetrics {
		if cfg.Allocator.Kind == config.KindPool {
			reg.UpdatePoolMetrics(pools.Default())
		}
		reg.UpdateSystemMetrics(start)
		if err := reg.WriteText(stderr); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// renderer writes one input line to a stream in the chosen mode.
type renderer struct {
	mode     string
	quote    byte
	htmlSafe bool
	withID   bool
}

func (r renderer) render(s stream.Stream, text string) error {
	if r.withID {
		if _, err := format.UUID(s, uuid.New()); err != nil {
			return err
		}
		if err := s.WriteByte(' '); err != nil {
			return err
		}
	}

	var err error
	switch r.mode {
	case modeQuote:
		_, err = format.Quote(s, text, r.quote, r.htmlSafe)
	case modeEscape:
		_, err = format.Escape(s, text, r.quote, r.htmlSafe)
	case modeJSON:
		_, err = format.JSON(s, text)
	default:
		_, err = stream.WriteString(s, text)
	}
	return err
}
