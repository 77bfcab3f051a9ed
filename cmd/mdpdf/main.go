package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdpdf"
	"pkt.systems/mdpdf/preview"
	"pkt.systems/mdpdf/styleconf"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdpdf")
}

func main() {
	var (
		stylePath       string
		outPath         string
		widthFlag       int
		jsonOut         bool
		keepFrontMatter bool
	)

	flags := pflag.NewFlagSet("mdpdf", pflag.ExitOnError)
	flags.StringVarP(&stylePath, "style", "s", "", "Style TOML path (default: ~/"+styleconf.DefaultFileName+")")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.BoolVar(&jsonOut, "json", false, "Emit the styled element sequence as JSON")
	flags.BoolVar(&keepFrontMatter, "keep-front-matter", false, "Render front matter instead of stripping it")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdpdf [flags] [input]\n")
		fmt.Fprintln(os.Stderr, "\nInput is a file path or an http(s) URL; with no input, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	args := flags.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "at most one input argument is accepted")
		os.Exit(2)
	}

	source, err := readInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}

	table, err := loadTable(stylePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load style: %v\n", err)
		os.Exit(1)
	}

	var opts []mdpdf.Option
	if keepFrontMatter {
		opts = append(opts, mdpdf.WithFrontMatter(true))
	}
	elements, err := mdpdf.Convert(mdpdf.ConvertRequest{
		Source:  source,
		Table:   table,
		Options: opts,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if jsonOut {
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(elements); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if _, err := io.WriteString(writer, preview.Render(elements, resolveWidth(widthFlag))); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	raw := strings.TrimSpace(args[0])
	if raw == "" {
		return "", fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return mdpdf.Fetch(context.Background(), raw, nil)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return readFile(path)
		}
	}
	return readFile(raw)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(normalizePath(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func loadTable(path string) (mdpdf.StyleTable, error) {
	if strings.TrimSpace(path) == "" {
		return styleconf.LoadDefault()
	}
	return styleconf.Load(normalizePath(path))
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
