package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// readInput fetches the full content of one input argument: "-" reads
// stdin, http(s) URLs are downloaded, everything else is a file path
// (file:// URLs included).
func readInput(raw string) ([]byte, error) {
	if raw == "-" {
		return io.ReadAll(os.Stdin)
	}
	if lp := localPath(raw); lp != "" {
		return os.ReadFile(lp)
	}
	return fetchURL(raw)
}

func fetchURL(raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// localPath resolves an input argument to a filesystem path, or ""
// when the input is stdin or a remote URL.
func localPath(input string) string {
	if input == "-" {
		return ""
	}
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return ""
		case "file":
			p := u.Path
			if p == "" {
				p = u.Host
			}
			if unescaped, err := url.PathUnescape(p); err == nil {
				p = unescaped
			}
			return normalizePath(p)
		}
	}
	return normalizePath(input)
}

// siblingPDF names the default output for an input: the input's base
// name with a .pdf extension, next to local files or in the working
// directory for remote inputs.
func siblingPDF(input string) string {
	if lp := localPath(input); lp != "" {
		base := strings.TrimSuffix(filepath.Base(lp), filepath.Ext(lp))
		return filepath.Join(filepath.Dir(lp), base+".pdf")
	}
	return pdfName(input)
}

func pdfName(input string) string {
	return baseNameFor(input) + ".pdf"
}

func baseNameFor(input string) string {
	if input == "-" {
		return "stdin"
	}
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		base := path.Base(u.Path)
		if base == "" || base == "." || base == "/" {
			base = u.Host
		}
		return strings.TrimSuffix(base, path.Ext(base))
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizePath(p string) string {
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				p = home
			} else {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	abs, err := filepath.Abs(p)
	if err == nil {
		return abs
	}
	return p
}
