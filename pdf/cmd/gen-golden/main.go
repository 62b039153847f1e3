// Command gen-golden regenerates the byte goldens under pdf/testdata.
// Every sample markdown file is rendered to a sibling .pdf; rendering is
// deterministic, so the goldens are stable across machines.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pkt.systems/mdpdf"
	"pkt.systems/mdpdf/pdf"
	"pkt.systems/mdpdf/pdf/internal/pdfscan"
)

func main() {
	root, err := findTestdata()
	if err != nil {
		fatalf("find testdata: %v", err)
	}
	samples, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		fatalf("glob samples: %v", err)
	}
	if len(samples) == 0 {
		fatalf("no markdown samples under %s", root)
	}
	sort.Strings(samples)

	for _, sample := range samples {
		src, err := os.ReadFile(sample)
		if err != nil {
			fatalf("read %s: %v", sample, err)
		}
		blocks, err := mdpdf.Parse(src)
		if err != nil {
			fatalf("parse %s: %v", sample, err)
		}
		name := strings.TrimSuffix(filepath.Base(sample), ".md")
		out, err := pdf.Render(pdf.Request{Blocks: blocks, Title: name})
		if err != nil {
			fatalf("render %s: %v", sample, err)
		}
		doc, err := pdfscan.Scan(out)
		if err != nil {
			fatalf("scan %s: %v", sample, err)
		}
		if err := doc.CheckOffsets(); err != nil {
			fatalf("verify %s: %v", sample, err)
		}
		dst := strings.TrimSuffix(sample, ".md") + ".pdf"
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			fatalf("write %s: %v", dst, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s (%d bytes, %d objects)\n", dst, len(out), doc.MaxObj)
	}
}

func findTestdata() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "pdf", "testdata")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		candidate = filepath.Join(dir, "testdata")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no testdata directory above %s", dir)
		}
		dir = parent
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
