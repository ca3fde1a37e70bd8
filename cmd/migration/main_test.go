package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	forced     []int
	targets    []uint
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.targets = append(f.targets, version)
	return nil
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = append(f.forced, version)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestRun_UpIgnoresNoChange(t *testing.T) {
	m := &fakeMigrator{upErr: migrate.ErrNoChange}
	if err := run(m, []string{"up"}, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("expected no change to be ignored, got %v", err)
	}

	m.upErr = errors.New("dirty database")
	if err := run(m, []string{"up"}, &bytes.Buffer{}, logging.NewNop()); err == nil {
		t.Fatalf("expected up error to surface")
	}
}

func TestRun_DownDefaultsToOneStep(t *testing.T) {
	m := &fakeMigrator{}
	if err := run(m, []string{"down"}, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("down: %v", err)
	}
	if err := run(m, []string{"DOWN", "2"}, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("down 2: %v", err)
	}
	if len(m.steps) != 2 || m.steps[0] != -1 || m.steps[1] != -2 {
		t.Fatalf("unexpected steps: %v", m.steps)
	}
	if err := run(m, []string{"down", "0"}, &bytes.Buffer{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for zero steps")
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	m := &fakeMigrator{versionErr: migrate.ErrNilVersion}
	if err := run(m, []string{"version"}, &out, logging.NewNop()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "version: none") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	m = &fakeMigrator{version: 2, dirty: true}
	if err := run(m, []string{"version"}, &out, logging.NewNop()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "version: 2\ndirty: true\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_ForceAndGoto(t *testing.T) {
	m := &fakeMigrator{}
	if err := run(m, []string{"force", "1"}, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("force: %v", err)
	}
	if err := run(m, []string{"goto", "2"}, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if len(m.forced) != 1 || m.forced[0] != 1 || len(m.targets) != 1 || m.targets[0] != 2 {
		t.Fatalf("unexpected calls: forced=%v targets=%v", m.forced, m.targets)
	}

	if err := run(m, []string{"force"}, &bytes.Buffer{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for force without version")
	}
	if err := run(m, []string{"goto", "-3"}, &bytes.Buffer{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run(&fakeMigrator{}, []string{"sideways"}, &bytes.Buffer{}, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	if _, err := parseVersion("abc"); err == nil {
		t.Fatalf("expected error for non-numeric version")
	}
	if v, err := parseVersion(" 3 "); err != nil || v != 3 {
		t.Fatalf("unexpected parse: v=%d err=%v", v, err)
	}
}
