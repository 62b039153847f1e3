package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestBaseNameFor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "-", want: "stdin"},
		{input: "manual.md", want: "manual"},
		{input: "docs/guide.markdown", want: "guide"},
		{input: "README", want: "README"},
		{input: "archive.tar.gz", want: "archive.tar"},
		{input: "https://example.com/guide/intro.md", want: "intro"},
		{input: "https://example.com/", want: "example"},
		{input: "https://example.com", want: "example"},
	}
	for _, tt := range tests {
		if got := baseNameFor(tt.input); got != tt.want {
			t.Fatalf("baseNameFor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSiblingPDF(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "notes.md")
	if got, want := siblingPDF(local), filepath.Join(dir, "notes.pdf"); got != want {
		t.Fatalf("siblingPDF(%q) = %q, want %q", local, got, want)
	}
	if got := siblingPDF("https://example.com/docs/guide.md"); got != "guide.pdf" {
		t.Fatalf("siblingPDF(url) = %q, want %q", got, "guide.pdf")
	}
}

func TestLocalPath(t *testing.T) {
	if got := localPath("-"); got != "" {
		t.Fatalf("localPath(stdin) = %q, want empty", got)
	}
	if got := localPath("https://example.com/a.md"); got != "" {
		t.Fatalf("localPath(url) = %q, want empty", got)
	}
	if got := localPath("file:///tmp/spaced%20name.md"); got != "/tmp/spaced name.md" {
		t.Fatalf("localPath(file url) = %q", got)
	}
	got := localPath("plain.md")
	if !filepath.IsAbs(got) || filepath.Base(got) != "plain.md" {
		t.Fatalf("localPath(relative) = %q, want absolute path ending in plain.md", got)
	}
}

func TestReadInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	buf, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput file: %v", err)
	}
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", buf)
	}

	buf, err = readInput("file://" + path)
	if err != nil {
		t.Fatalf("readInput file URL: %v", err)
	}
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", buf)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()
	buf, err = readInput(srv.URL)
	if err != nil {
		t.Fatalf("readInput http: %v", err)
	}
	if string(buf) != "remote" {
		t.Fatalf("unexpected http content: %q", buf)
	}
}

func TestReadInputHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	if _, err := readInput(srv.URL + "/missing.md"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		input string
		flag  string
		want  string
	}{
		{input: "docs/manual.md", flag: "", want: "manual"},
		{input: "-", flag: "", want: "document"},
		{input: "anything.md", flag: "Field Manual", want: "Field Manual"},
		{input: "https://example.com/ops.md", flag: "", want: "ops"},
	}
	for _, tt := range tests {
		if got := titleFor(tt.input, tt.flag); got != tt.want {
			t.Fatalf("titleFor(%q, %q) = %q, want %q", tt.input, tt.flag, got, tt.want)
		}
	}
}
