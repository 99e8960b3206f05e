// Package main is the yomu CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/yomu/internal/cli"
	"github.com/hyperjump/yomu/internal/config"
	"github.com/hyperjump/yomu/internal/digest"
	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/internal/nlp"
	"github.com/hyperjump/yomu/internal/segment"
	"github.com/hyperjump/yomu/internal/watcher"
	"github.com/hyperjump/yomu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/yomu/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if present, and a missing default file falls
// back to built-in defaults. Returns the config and the path actually loaded
// ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "run":
		runOnce()
	case "watch":
		runWatch()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("yomu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runFlags are the flags shared by run and watch. Zero values mean "use config".
type runFlags struct {
	configPath    *string
	input         *string
	request       *string
	output        *string
	format        *string
	persona       *string
	job           *string
	maxSections   *int
	excerptLength *int
	workers       *int
	debug         *bool
}

func registerRunFlags(fs *flag.FlagSet) *runFlags {
	return &runFlags{
		configPath:    fs.String("config", defaultConfigPath, "config file path"),
		input:         fs.String("input", "", "input directory to scan for documents"),
		request:       fs.String("request", "", "run request JSON file (overrides directory scan)"),
		output:        fs.String("output", "", "output file path (empty = stdout)"),
		format:        fs.String("format", "", "output format: json, text, or compact"),
		persona:       fs.String("persona", "", "persona for directory scans"),
		job:           fs.String("job", "", "job to be done for directory scans"),
		maxSections:   fs.Int("max-sections", 0, "number of sections to select"),
		excerptLength: fs.Int("excerpt-length", 0, "maximum refined excerpt length in characters"),
		workers:       fs.Int("workers", 0, "documents extracted in parallel"),
		debug:         fs.Bool("debug", false, "enable debug logging (per-section scores, file events, etc.)"),
	}
}

// applyFlags overrides cfg with every flag that was given a value. Input and
// output paths end up absolute so watcher events can be matched against them.
func applyFlags(cfg *config.Config, f *runFlags) error {
	if *f.input != "" {
		cfg.Input.Dir = *f.input
	}
	if *f.request != "" {
		cfg.Input.Request = *f.request
	}
	if *f.output != "" {
		cfg.Output.Path = *f.output
	}
	if *f.format != "" {
		cfg.Output.Format = *f.format
	}
	if *f.persona != "" {
		cfg.Query.Persona = *f.persona
	}
	if *f.job != "" {
		cfg.Query.Job = *f.job
	}
	if *f.maxSections > 0 {
		cfg.Ranking.MaxSections = *f.maxSections
	}
	if *f.excerptLength > 0 {
		cfg.Ranking.ExcerptLength = *f.excerptLength
	}
	if *f.workers > 0 {
		cfg.Ranking.Workers = *f.workers
	}
	if *f.debug {
		cfg.Debug = true
	}

	cfg.Input.Dir = absPath(cfg.Input.Dir)
	if cfg.Input.Request != "" {
		cfg.Input.Request = absPath(cfg.Input.Request)
	}
	if cfg.Output.Path != "" {
		cfg.Output.Path = absPath(cfg.Output.Path)
	}
	return cfg.Validate()
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// app is everything one run needs, built once per process.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	processor *digest.Processor
}

func setup(args []string, name string) *app {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	f := registerRunFlags(fs)
	_ = fs.Parse(args)

	// A missing .env is fine.
	_ = godotenv.Load()
	cfg, resolvedConfigPath, err := loadConfig(*f.configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		fmt.Printf("Invalid environment: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, f); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("input_dir", cfg.Input.Dir),
		zap.Bool("debug", cfg.Debug),
	)

	res, err := nlp.Load()
	if err != nil {
		logger.Fatal("Failed to load linguistic resources", zap.Error(err))
	}
	processor, err := newProcessor(cfg, res, logger)
	if err != nil {
		logger.Fatal("Failed to build processor", zap.Error(err))
	}
	return &app{
		cfg:       cfg,
		logger:    logger,
		processor: processor,
	}
}

func newProcessor(cfg *config.Config, lang digest.Linguistics, logger *zap.Logger) (*digest.Processor, error) {
	rules, err := segment.RulesByName(cfg.Segment.HeaderRules...)
	if err != nil {
		return nil, err
	}
	return digest.NewProcessor(lang,
		digest.WithLogger(logger),
		digest.WithBaseDir(cfg.Input.Dir),
		digest.WithExtensions(cfg.Input.Extensions),
		digest.WithWorkers(cfg.Ranking.Workers),
		digest.WithSegmenter(segment.New(rules...)),
	), nil
}

// buildRequest reads the configured request file, or scans the input
// directory when there is none. Config caps fill in what the request leaves unset.
func buildRequest(cfg *config.Config) (*models.RunRequest, error) {
	var (
		req *models.RunRequest
		err error
	)
	if cfg.Input.Request != "" {
		req, err = cli.LoadRequest(cfg.Input.Request)
	} else {
		req, err = cli.RequestFromDir(cfg.Input.Dir, cfg.Input.Extensions, cfg.Query.Persona, cfg.Query.Job)
	}
	if err != nil {
		return nil, err
	}
	req.MaxSections = cfg.Ranking.MaxSections
	req.ExcerptLength = cfg.Ranking.ExcerptLength
	return req, nil
}

// execute performs one full run and writes the digest.
func (a *app) execute(ctx context.Context) error {
	req, err := buildRequest(a.cfg)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	d, err := a.processor.Process(ctx, req)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	format := cli.OutputFormat(a.cfg.Output.Format)
	if a.cfg.Output.Path == "" {
		return cli.WriteDigest(os.Stdout, d, format)
	}
	if err := cli.WriteDigestFile(a.cfg.Output.Path, d, format); err != nil {
		return err
	}
	a.logger.Info("digest written",
		zap.String("path", a.cfg.Output.Path),
		zap.Int("sections", len(d.ExtractedSections)))
	return nil
}

func runOnce() {
	a := setup(os.Args[2:], "run")
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %v\n", err)
		os.Exit(1)
	}
}

func runWatch() {
	a := setup(os.Args[2:], "watch")
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	rerun := func(reason string, paths []string) {
		mu.Lock()
		defer mu.Unlock()
		a.logger.Info("running digest", zap.String("reason", reason), zap.Strings("changed", paths))
		if err := a.execute(ctx); err != nil {
			a.logger.Warn("digest run failed", zap.Error(err))
		}
	}

	opts := []watcher.WatcherOption{
		watcher.WithDebounce(time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond),
		watcher.WithIgnore(a.cfg.Output.Path),
	}
	if a.cfg.Debug {
		opts = append(opts, watcher.WithLogger(a.logger))
	}
	w := watcher.NewWatcher(
		[]string{a.cfg.Input.Dir},
		a.cfg.Input.Extensions,
		a.cfg.Watch.RecursiveOrDefault(),
		func(paths []string) { rerun("change", paths) },
		opts...,
	)
	if err := w.Start(ctx); err != nil {
		a.logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()

	rerun("startup", nil)
	a.logger.Info("watching for changes", zap.Strings("directories", w.Directories()))
	<-ctx.Done()
	a.logger.Info("Shutting down...")
}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	_ = fs.Parse(os.Args[2:])

	path := "config.yaml"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if err := writeDefaultConfig(path, *force); err != nil {
		fmt.Printf("Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// writeDefaultConfig saves the built-in defaults to path, refusing to
// overwrite an existing file unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
	}
	return config.Save(path, config.Default())
}

func printUsage() {
	fmt.Println(`yomu - Persona-driven section digest for document collections

Usage:
  yomu run [flags]            Rank sections once and write the digest
  yomu watch [flags]          Run, then re-run whenever input documents change
  yomu init [-force] [path]   Write a default config file (default: ./config.yaml)
  yomu version                Show version
  yomu help                   Show this help

Run/Watch Flags:
  --config string         Config file path (default: /usr/local/etc/yomu/config.yaml, or ./config.yaml if present)
  --input string          Input directory to scan (default from config: ./input)
  --request string        Run request JSON file; replaces the directory scan
  --output string         Output file (default: stdout)
  --format string         Output format: json, text, or compact (default: json)
  --persona string        Persona for directory scans
  --job string            Job to be done for directory scans
  --max-sections int      Sections to select (default: 10)
  --excerpt-length int    Maximum refined excerpt length (default: 1000)
  --workers int           Documents extracted in parallel (default: 4)
  --debug                 Enable debug logging

Examples:
  yomu run --input ./docs --job "Plan a 4 day trip for 10 college friends"
  yomu run --request challenge1b_input.json --output challenge1b_output.json
  yomu run --format text --persona "HR professional" --job "Create fillable forms"
  yomu watch --input ./docs --output ./out/digest.json`)
}
