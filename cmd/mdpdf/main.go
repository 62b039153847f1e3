package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/term"
	"pkt.systems/mdpdf/pdf"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("pkt.systems/mdpdf")
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outPath     string
		title       string
		configPath  string
		workers     int
		verbose     bool
		quiet       bool
		showVersion bool
	)

	defaults := pdf.DefaultConfig()
	geo := defaults
	flags := pflag.NewFlagSet("mdpdf", pflag.ExitOnError)
	flags.StringVarP(&outPath, "output", "o", "", "Output file, or directory for multiple inputs")
	flags.StringVarP(&title, "title", "t", "", "Document title (defaults to frontmatter title or the input name)")
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.Float64Var(&geo.PageWidth, "page-width", defaults.PageWidth, "Page width in points")
	flags.Float64Var(&geo.PageHeight, "page-height", defaults.PageHeight, "Page height in points")
	flags.Float64Var(&geo.Margin, "margin", defaults.Margin, "Page margin in points")
	flags.Float64Var(&geo.FontSize, "font-size", defaults.FontSize, "Base font size in points")
	flags.Float64Var(&geo.LineHeight, "line-height", defaults.LineHeight, "Line height multiplier")
	for i := range geo.HeadingScale {
		flags.Float64Var(&geo.HeadingScale[i], fmt.Sprintf("h%d-scale", i+1),
			defaults.HeadingScale[i], fmt.Sprintf("Scale factor for H%d headings", i+1))
	}
	flags.IntVarP(&workers, "workers", "w", 0, "Parallel renders for multiple inputs (0 selects automatically)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose progress output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdpdf [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are Markdown files or http(s) URLs; \"-\" or no input reads stdin.")
		fmt.Fprintln(os.Stderr, "Each input renders to a sibling .pdf unless -o/--output names a file or directory.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return 0
	}

	// maxprocs.Set only fails on an invalid GOMAXPROCS env value, in which
	// case runtime defaults apply and the program continues.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg := pdf.DefaultConfig()
	if configPath != "" {
		fc, err := loadConfigFile(normalizePath(configPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			return 2
		}
		fc.apply(&cfg)
		if title == "" {
			title = fc.Title
		}
		if workers == 0 && fc.Workers > 0 {
			workers = fc.Workers
		}
	}
	applyFlagOverrides(&cfg, flags, geo)

	args := flags.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	outDir := false
	if outPath != "" {
		if strings.HasSuffix(outPath, "/") {
			outDir = true
		} else if info, err := os.Stat(normalizePath(outPath)); err == nil && info.IsDir() {
			outDir = true
		}
		if len(args) > 1 && !outDir {
			fmt.Fprintf(os.Stderr, "output %q must be a directory for multiple inputs\n", outPath)
			return 2
		}
	}

	jobs := make([]renderJob, 0, len(args))
	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			fmt.Fprintln(os.Stderr, "empty input argument")
			return 2
		}
		job := renderJob{Input: raw, Config: cfg}
		switch {
		case outDir:
			job.Output = filepath.Join(normalizePath(outPath), pdfName(raw))
		case outPath != "":
			job.Output = normalizePath(outPath)
		case raw == "-":
			// stdin renders to stdout unless -o names a file
		default:
			job.Output = siblingPDF(raw)
		}
		job.Title = titleFor(raw, title)
		job.TitleSet = title != ""
		jobs = append(jobs, job)
	}

	for _, job := range jobs {
		if job.Output == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "stdout is a terminal, not writing PDF bytes to it; use -o/--output")
			return 2
		}
	}

	poolSize := resolvePoolSize(workers)
	if verbose {
		fmt.Fprintf(os.Stderr, "workers: %d\n", poolSize)
	}

	results := renderBatch(jobs, poolSize)
	if failed := printResults(results, quiet, verbose); failed > 0 {
		return 1
	}
	return 0
}

func titleFor(input, flagTitle string) string {
	if flagTitle != "" {
		return flagTitle
	}
	if input == "-" {
		return "document"
	}
	return baseNameFor(input)
}
