package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/sortlane/internal/storage"
)

// execute runs the root command with args and returns its output. Flag
// variables are package globals, so every call starts from the defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagFPS, flagSeed = 60, 0
	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
	flagLogLevel, flagLevelsDir, flagConfig, flagDifficulty = "warn", "", "", ""
	flagRecord, flagAll, flagVerbose, flagEndless, flagClear = false, false, false, false, false
	flagScoresLimit = 10

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels")
	if err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	for _, want := range []string{"01-first-sort", "06-e-waste", "paper"} {
		if !strings.Contains(out, want) {
			t.Errorf("levels output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelsCheckReportsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	good := "id: ok\nname: Fine\nlanes: 1\ncategories: [paper]\ntime_limit: 30\ntarget: 2\n"
	bad := "id: bad\nlanes: 0\ncategories: [paper]\ntime_limit: 30\ntarget: 2\n"
	for name, body := range map[string]string{"ok.yaml": good, "bad.yaml": bad} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, "levels", "check", "--levels-dir", dir)
	if err == nil {
		t.Fatal("expected an error for the invalid file")
	}
	if !strings.Contains(out, "1 valid, 1 invalid") || !strings.Contains(out, "bad.yaml") {
		t.Errorf("unexpected check output:\n%s", out)
	}
}

func TestSimCommandCompletesLevel(t *testing.T) {
	out, err := execute(t, "sim", "01-first-sort", "--seed", "12345")
	if err != nil {
		t.Fatalf("sim failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "01-first-sort") || !strings.Contains(out, "complete") {
		t.Errorf("unexpected sim output:\n%s", out)
	}
}

func TestSimCommandRecordsResults(t *testing.T) {
	out, err := execute(t, "sim", "01-first-sort", "--seed", "12345", "--record")
	if err != nil {
		t.Fatalf("sim --record failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved 1 result(s)") {
		t.Errorf("expected save confirmation:\n%s", out)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if best, _ := store.BestScore("01-first-sort"); best == 0 {
		t.Error("recorded run should have a best score")
	}
}

func TestSimCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown level", []string{"sim", "no-such-level"}},
		{"bad endless id", []string{"sim", "endless-zero"}},
		{"unknown difficulty", []string{"sim", "01-first-sort", "--difficulty", "brutal"}},
		{"bad log level", []string{"sim", "01-first-sort", "--log-level", "loud"}},
		{"bad fps", []string{"sim", "01-first-sort", "--fps", "0"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, tc.args...); err == nil {
				t.Errorf("expected an error for %v", tc.args)
			}
		})
	}
}

func TestScoresCommand(t *testing.T) {
	out, err := execute(t, "scores")
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "no games yet") || !strings.Contains(out, "not played") {
		t.Errorf("unexpected empty overview:\n%s", out)
	}

	out, err = execute(t, "scores", "01-first-sort")
	if err != nil {
		t.Fatalf("scores <level> failed: %v", err)
	}
	if !strings.Contains(out, "No completed runs") {
		t.Errorf("unexpected empty level scores:\n%s", out)
	}
}
