package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"pkt.systems/mdpdf"
	"pkt.systems/mdpdf/pdf"
)

type renderJob struct {
	Input    string // path, URL, or "-" for stdin
	Output   string // file path; empty writes to stdout
	Title    string
	TitleSet bool // -t or config file named the title, frontmatter must not override
	Config   pdf.Config
}

type renderResult struct {
	Job      renderJob
	Bytes    int
	Err      error
	Duration time.Duration
}

// renderBatch processes jobs concurrently with at most workers
// goroutines. Results line up with the jobs slice.
func renderBatch(jobs []renderJob, workers int) []renderResult {
	if len(jobs) == 0 {
		return nil
	}
	concurrency := workers
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]renderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = renderOne(jobs[idx])
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
	return results
}

func renderOne(job renderJob) renderResult {
	start := time.Now()
	res := renderResult{Job: job}

	src, err := readInput(job.Input)
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	title := job.Title
	if fm, _ := mdpdf.StripFrontmatter(src); !job.TitleSet && fm.Title != "" {
		title = fm.Title
	}
	blocks, err := mdpdf.Parse(src)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	out, err := pdf.Render(pdf.Request{Blocks: blocks, Title: title, Config: job.Config})
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	res.Bytes = len(out)

	if job.Output == "" {
		_, err = os.Stdout.Write(out)
	} else {
		if dir := filepath.Dir(job.Output); dir != "" && dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				res.Err = fmt.Errorf("write: %w", mkErr)
				res.Duration = time.Since(start)
				return res
			}
		}
		err = os.WriteFile(job.Output, out, 0o644)
	}
	if err != nil {
		res.Err = fmt.Errorf("write: %w", err)
	}
	res.Duration = time.Since(start)
	return res
}

func printResults(results []renderResult, quiet, verbose bool) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", describeInput(r.Job.Input), r.Err)
			continue
		}
		if quiet || r.Job.Output == "" {
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stdout, "%s -> %s (%d bytes, %v)\n",
				describeInput(r.Job.Input), r.Job.Output, r.Bytes, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(os.Stdout, "wrote %s\n", r.Job.Output)
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(os.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

func describeInput(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}

// resolvePoolSize picks the worker count: an explicit value wins,
// otherwise half of GOMAXPROCS clamped to 1..8. automaxprocs has
// already adjusted GOMAXPROCS for container CPU limits.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
