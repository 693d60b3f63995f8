// Command crackmeter измеряет трещины на снимках и печатает отчёт.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/disintegration/imaging"

	"crack-meter/config"
	app "crack-meter/internal/application"
	"crack-meter/internal/domain/entity"
	"crack-meter/internal/infrastructure/imagefile"
	"crack-meter/internal/infrastructure/vision"
	"crack-meter/internal/logger"
	"crack-meter/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	logger.Setup(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	fs := flag.NewFlagSet("crackmeter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: crackmeter [flags] image...")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nbackend: %s\n", vision.BackendName)
		fmt.Fprintln(stderr, "The native backend is slow on full-resolution photos;")
		fmt.Fprintln(stderr, "build with -tags gocv to use OpenCV for them.")
	}

	optics := cfg.Optics
	fs.Float64Var(&optics.PixelSize, "pixel-size", optics.PixelSize, "physical pixel size, m/px")
	fs.Float64Var(&optics.ObjectDistance, "distance", optics.ObjectDistance, "lens to surface distance L, m")
	fs.Float64Var(&optics.FocalLength, "focal", optics.FocalLength, "focal length f, m")
	asJSON := fs.Bool("json", false, "print a JSON report")
	overlayDir := fs.String("overlay", "", "write images with highlighted contours into this directory")
	workers := fs.Int("workers", cfg.Workers, "images analysed in parallel")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if err := optics.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid optics: %v\n", err)
		return 2
	}
	if *overlayDir != "" {
		if err := os.MkdirAll(*overlayDir, 0o755); err != nil {
			fmt.Fprintf(stderr, "overlay: %v\n", err)
			return 2
		}
	}

	decoder := imagefile.NewDecoder()
	normalizer, segmenter := vision.NewBackend()
	service := app.NewAnalysisService(decoder, normalizer, segmenter, *workers)

	jobs := make([]app.Job, 0, fs.NArg())
	for _, path := range fs.Args() {
		path := path
		jobs = append(jobs, app.Job{
			Name:   path,
			Optics: optics,
			Load:   func() (*entity.RawImage, error) { return decoder.Open(path) },
		})
	}

	logger.WithField("backend", vision.BackendName).WithField("images", len(jobs)).Debug("analysis started")
	outcomes := service.AnalyzeAll(ctx, jobs)

	failed := false
	highlighter := imagefile.NewHighlighter()
	for _, out := range outcomes {
		if out.Err != nil {
			failed = true
			continue
		}
		if *overlayDir != "" {
			if err := writeOverlay(highlighter, *overlayDir, out); err != nil {
				fmt.Fprintf(stderr, "overlay %s: %v\n", out.Name, err)
				failed = true
			}
		}
	}

	if *asJSON {
		if err := printJSON(stdout, outcomes); err != nil {
			fmt.Fprintf(stderr, "json: %v\n", err)
			return 1
		}
	} else {
		printText(stdout, outcomes)
	}

	if failed {
		return 1
	}
	return 0
}

func printText(w io.Writer, outcomes []app.Outcome) {
	for i, out := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", out.Name)
		}
		if out.Err != nil {
			fmt.Fprintln(w, describeError(out.Err))
			continue
		}
		fmt.Fprint(w, report.Text(out.Analysis.Result))
	}
}

func printJSON(w io.Writer, outcomes []app.Outcome) error {
	entries := make([]report.Entry, 0, len(outcomes))
	for _, out := range outcomes {
		entry := report.Entry{Source: out.Name}
		if out.Err != nil {
			entry.Error = describeError(out.Err)
		} else {
			result := out.Analysis.Result
			entry.Result = &result
			entry.Contours = len(out.Analysis.Contours)
		}
		entries = append(entries, entry)
	}

	data, err := report.JSON(entries)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func describeError(err error) string {
	var noCrack *entity.NoCrackDetectedError
	if errors.As(err, &noCrack) {
		return "no crack detected"
	}
	return "error: " + err.Error()
}

func writeOverlay(h *imagefile.Highlighter, dir string, out app.Outcome) error {
	base := filepath.Base(out.Name)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "_crack.png"
	return imaging.Save(h.Render(out.Image, out.Analysis.Contours), filepath.Join(dir, name))
}
