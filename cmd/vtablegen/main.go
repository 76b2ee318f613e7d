// Command vtablegen generates vtable interfaces, constructors and
// implementer tables for one Go package.
//
// Typical use is a go:generate line next to the descriptors:
//
//	//go:generate go run github.com/wippyai/joltbridge/cmd/vtablegen
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/internal/vtablegen"
)

func main() {
	var (
		dir        = flag.String("dir", "", "Package directory (default \".\")")
		tags       = flag.String("tags", "", "Extra build tags, comma-separated")
		output     = flag.String("o", "", "Output file name inside the package directory")
		configFile = flag.String("config", "", "TOML configuration file")
		check      = flag.Bool("check", false, "Fail if generated files are out of date instead of writing them")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			vtablegen.SetLogger(logger)
			defer func() { _ = logger.Sync() }()
		}
	}

	cfg := vtablegen.DefaultConfig()
	if *configFile != "" {
		loaded, err := vtablegen.LoadConfig(*configFile)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}
	if *dir != "" {
		cfg.Dir = *dir
	}
	if *tags != "" {
		cfg.Tags = append(cfg.Tags, strings.Split(*tags, ",")...)
	}
	if *output != "" {
		cfg.Output = *output
	}

	stale, err := run(cfg, *check)
	if err != nil {
		fail(err)
	}
	if len(stale) > 0 {
		for _, name := range stale {
			fmt.Fprintf(os.Stderr, "%s is out of date\n", name)
		}
		os.Exit(1)
	}
}

func fail(err error) {
	report(os.Stderr, err, term.IsTerminal(int(os.Stderr.Fd())))
	os.Exit(1)
}

// run generates the package and writes, or with check compares, both
// output files. It returns the paths that differ in check mode.
func run(cfg vtablegen.Config, check bool) ([]string, error) {
	res, err := vtablegen.Run(cfg)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, out := range []struct {
		name string
		src  []byte
	}{
		{cfg.Output, res.Source},
		{cfg.TestOutput, res.TestSource},
	} {
		path := filepath.Join(cfg.Dir, out.name)
		changed, err := syncFile(path, out.src, check)
		if err != nil {
			return nil, err
		}
		if changed && check {
			stale = append(stale, path)
		}
	}
	return stale, nil
}

// syncFile brings path in line with src. A nil src means the file should not
// exist. In check mode nothing is written and the return value reports
// whether a write would have happened.
func syncFile(path string, src []byte, check bool) (bool, error) {
	current, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "read "+path)
	}

	if src == nil {
		if !exists {
			return false, nil
		}
		if check {
			return true, nil
		}
		vtablegen.Logger().Info("removing", zap.String("file", path))
		if err := os.Remove(path); err != nil {
			return false, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "remove "+path)
		}
		return true, nil
	}

	if exists && bytes.Equal(current, src) {
		return false, nil
	}
	if check {
		return true, nil
	}
	vtablegen.Logger().Info("writing", zap.String("file", path), zap.Int("bytes", len(src)))
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "write "+path)
	}
	return true, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: vtablegen [-dir pkg] [-tags a,b] [-o file] [-config vtablegen.toml] [-check] [-v]")
}

func init() {
	flag.Usage = func() {
		usage(os.Stderr)
		flag.PrintDefaults()
	}
}
