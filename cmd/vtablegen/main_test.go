package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/internal/vtablegen"
)

func TestSyncFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zz_generated.vtable.go")
	src := []byte("package p\n")

	changed, err := syncFile(path, src, true)
	if err != nil || !changed {
		t.Fatalf("check on missing file: changed=%v err=%v", changed, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("check mode wrote the file")
	}

	if changed, err = syncFile(path, src, false); err != nil || !changed {
		t.Fatalf("write: changed=%v err=%v", changed, err)
	}
	if changed, err = syncFile(path, src, true); err != nil || changed {
		t.Fatalf("check after write: changed=%v err=%v", changed, err)
	}

	if changed, err = syncFile(path, nil, true); err != nil || !changed {
		t.Fatalf("check stale file: changed=%v err=%v", changed, err)
	}
	if changed, err = syncFile(path, nil, false); err != nil || !changed {
		t.Fatalf("remove: changed=%v err=%v", changed, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("stale file not removed")
	}
	if changed, err = syncFile(path, nil, false); err != nil || changed {
		t.Errorf("nothing to do: changed=%v err=%v", changed, err)
	}
}

func TestSyncFile_Errors(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be read or written as a file
	_, err := syncFile(dir, []byte("package p\n"), false)
	var e *errors.Error
	if !errors.As(err, &e) || e.Phase != errors.PhaseGenerate || !strings.Contains(e.Detail, dir) {
		t.Errorf("syncFile on a directory: %#v", err)
	}
	if e != nil && e.Cause == nil {
		t.Error("cause dropped")
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "list",
			err: errors.List{
				errors.Positioned(errors.KindNaming, "desc.go:12:6", "the structure Table does not end in VTable"),
				errors.Positioned(errors.KindLayout, "desc.go:12:6", "vtable Table is missing a _ structs.HostLayout field"),
			},
			want: []string{
				"desc.go:12:6: naming: the structure Table does not end in VTable",
				"desc.go:12:6: layout: vtable Table is missing a _ structs.HostLayout field",
				"2 errors",
			},
		},
		{
			name: "single",
			err:  errors.InvalidInput(errors.PhaseConfig, "dir cannot be empty"),
			want: []string{"invalid_input: dir cannot be empty"},
		},
		{
			name: "plain",
			err:  os.ErrNotExist,
			want: []string{"Error: file does not exist"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			report(&buf, tt.err, false)
			got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(got) != len(tt.want) {
				t.Fatalf("got %q", got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRun_PackageWithoutDirectives(t *testing.T) {
	if testing.Short() {
		t.Skip("loads a package through the go command")
	}
	dir := t.TempDir()
	write := func(name, src string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("go.mod", "module example.com/plain\n\ngo 1.25\n")
	write("plain.go", "package plain\n\ntype X struct{}\n")

	cfg := vtablegenConfig(dir)
	stale, err := run(cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Errorf("stale = %v", stale)
	}
}

func vtablegenConfig(dir string) vtablegen.Config {
	cfg := vtablegen.DefaultConfig()
	cfg.Dir = dir
	return cfg
}

// TestRun_CheckedInFilesCurrent regenerates every package of the module
// that carries directives and compares with the files on disk.
func TestRun_CheckedInFilesCurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages through the go command")
	}
	for _, dir := range []string{"../../physics", "../run", "../../examples/basic"} {
		t.Run(filepath.Base(dir), func(t *testing.T) {
			cfg := vtablegenConfig(dir)
			res, err := vtablegen.Run(cfg)
			if err != nil {
				t.Fatal(err)
			}
			for _, out := range []struct {
				name string
				src  []byte
			}{
				{cfg.Output, res.Source},
				{cfg.TestOutput, res.TestSource},
			} {
				path := filepath.Join(dir, out.name)
				current, err := os.ReadFile(path)
				if out.src == nil {
					if err == nil {
						t.Errorf("%s exists but nothing is generated for it", path)
					}
					continue
				}
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(current, out.src) {
					t.Errorf("%s differs from the generator output at byte %d", path, firstDiff(current, out.src))
				}
			}

			stale, err := run(cfg, true)
			if err != nil {
				t.Fatal(err)
			}
			if len(stale) != 0 {
				t.Errorf("check mode reports %v", stale)
			}
		})
	}
}

func firstDiff(a, b []byte) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	return min(len(a), len(b))
}
