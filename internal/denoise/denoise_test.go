package denoise

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/backmassage/rdmdenoise/internal/config"
)

func TestCommand(t *testing.T) {
	t.Setenv("RMANTREE", "/opt/pixar/RenderManProServer-26.3")
	cfg := config.DefaultConfig()
	cfg.DenoiserPath = "${RMANTREE}/bin/denoise_batch"

	got := Command(&cfg, "/frames/FILTERED/rdm_denoise_config.json")
	want := []string{
		"/opt/pixar/RenderManProServer-26.3/bin/denoise_batch",
		"--json", "/frames/FILTERED/rdm_denoise_config.json", "/s",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Command = %v, want %v", got, want)
	}

	cfg.BatchFlag = ""
	if got := Command(&cfg, "job.json"); len(got) != 3 {
		t.Errorf("empty batch flag should be omitted: %v", got)
	}
}

func TestExecute_Success(t *testing.T) {
	script := writeScript(t, "echo \"args: $@\"\nexit 0\n")
	cfg := config.DefaultConfig()
	cfg.DenoiserPath = script

	res := Execute(context.Background(), &cfg, "job.json")
	if res.Err != nil {
		t.Fatalf("Execute: %v (output %q)", res.Err, res.Output)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d", res.ExitCode)
	}
	if !strings.Contains(res.Output, "--json job.json /s") {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestExecute_ExitCode(t *testing.T) {
	script := writeScript(t, "echo boom >&2\nexit 3\n")
	cfg := config.DefaultConfig()
	cfg.DenoiserPath = script

	res := Execute(context.Background(), &cfg, "job.json")
	if res.Err == nil {
		t.Fatal("expected error")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Output, "boom") {
		t.Errorf("stderr not captured: %q", res.Output)
	}
}

func TestExecute_MissingBinary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DenoiserPath = filepath.Join(t.TempDir(), "missing")
	res := Execute(context.Background(), &cfg, "job.json")
	if res.Err == nil || res.ExitCode != -1 {
		t.Errorf("Err = %v ExitCode = %d", res.Err, res.ExitCode)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "denoise_batch")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}
