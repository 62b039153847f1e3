package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"pkt.systems/mdpdf"
	"pkt.systems/mdpdf/pdf"
)

func TestResolvePoolSize(t *testing.T) {
	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit value wins", workers: 3, want: 3},
		{name: "explicit one", workers: 1, want: 1},
		{name: "zero uses auto calculation", workers: 0, want: min(max(gomaxprocs/2, 1), 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePoolSize(tt.workers); got != tt.want {
				t.Fatalf("resolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestRenderBatchWritesFiles(t *testing.T) {
	dir := t.TempDir()
	inputs := map[string]string{
		"a.md": "# Alpha\n\nFirst document.\n",
		"b.md": "# Beta\n\nSecond document with a [link](https://example.com).\n",
	}
	var jobs []renderJob
	for name, content := range inputs {
		in := filepath.Join(dir, name)
		if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
			t.Fatalf("write input: %v", err)
		}
		jobs = append(jobs, renderJob{
			Input:  in,
			Output: filepath.Join(dir, "out", name+".pdf"),
			Title:  name,
			Config: pdf.DefaultConfig(),
		})
	}

	results := renderBatch(jobs, 2)
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("render %s: %v", res.Job.Input, res.Err)
		}
		out, err := os.ReadFile(res.Job.Output)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-1.4\n")) {
			t.Fatalf("output %s is not a PDF", res.Job.Output)
		}
		if res.Bytes != len(out) {
			t.Fatalf("result reports %d bytes, file holds %d", res.Bytes, len(out))
		}
	}
}

func TestRenderOneUsesFrontmatterTitle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	src := "---\ntitle: Field Notes\n---\n\n# Body\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	job := renderJob{Input: in, Output: filepath.Join(dir, "notes.pdf"), Title: "fallback", Config: pdf.DefaultConfig()}
	if res := renderOne(job); res.Err != nil {
		t.Fatalf("render: %v", res.Err)
	}
	out, err := os.ReadFile(job.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(out, []byte("/Title (Field Notes)")) {
		t.Fatalf("expected frontmatter title in info dictionary")
	}

	// An explicit title wins over the document header.
	job.TitleSet = true
	if res := renderOne(job); res.Err != nil {
		t.Fatalf("render: %v", res.Err)
	}
	out, err = os.ReadFile(job.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(out, []byte("/Title (fallback)")) {
		t.Fatalf("expected explicit title to win")
	}
}

func TestRenderBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(bad, append([]byte("text"), 0x00), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	jobs := []renderJob{
		{Input: filepath.Join(dir, "missing.md"), Output: filepath.Join(dir, "m.pdf"), Config: pdf.DefaultConfig()},
		{Input: bad, Output: filepath.Join(dir, "b.pdf"), Config: pdf.DefaultConfig()},
	}
	results := renderBatch(jobs, 1)
	if results[0].Err == nil {
		t.Fatalf("expected read error for missing input")
	}
	if !errors.Is(results[1].Err, mdpdf.ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", results[1].Err)
	}
	if failed := printResults(results, true, false); failed != 2 {
		t.Fatalf("expected 2 failures, got %d", failed)
	}
}
