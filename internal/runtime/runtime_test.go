package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"
)

func TestForEntry(t *testing.T) {
	tests := []struct {
		entry string
		node  bool
	}{
		{"/cache/pkg/index.js", true},
		{"/cache/pkg/lib/main.CJS", true},
		{"/cache/pkg/bin/stencil-init", false},
		{"/cache/pkg/run.sh", false},
	}

	for _, tt := range tests {
		rt := ForEntry(tt.entry, Streams{})
		_, isNode := rt.(*NodeRuntime)
		if isNode != tt.node {
			t.Errorf("ForEntry(%q) returned %T", tt.entry, rt)
		}
	}
}

func TestNodeProgram(t *testing.T) {
	program, err := NodeProgram(`/tmp/a "b"/index.js`, []string{"demo"}, map[string]any{"force": true})
	if err != nil {
		t.Fatalf("NodeProgram failed: %v", err)
	}
	want := `require("/tmp/a \"b\"/index.js").apply(null, ["demo",{"force":true}])`
	if program != want {
		t.Errorf("NodeProgram() =\n%s\nwant\n%s", program, want)
	}
}

func TestNodeProgram_NoOptions(t *testing.T) {
	program, err := NodeProgram("/x/index.js", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(program, `.apply(null, [{}])`) {
		t.Errorf("unexpected program %s", program)
	}
}

func TestSetEnv(t *testing.T) {
	env := []string{"A=1", "B=2"}
	env = setEnv(env, "B", "3")
	env = setEnv(env, "C", "4")
	want := []string{"A=1", "B=3", "C=4"}
	if strings.Join(env, ",") != strings.Join(want, ",") {
		t.Errorf("setEnv = %v, want %v", env, want)
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if goruntime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBinaryRuntime_PayloadAndExitCode(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "payload.json")
	entry := writeScript(t, dir, "cmd", `printf '%s' "$`+PayloadEnv+`" > "`+out+`"; echo "arg=$1"; exit 3`)

	var stdout bytes.Buffer
	rt := &BinaryRuntime{Streams: Streams{Stdout: &stdout}}
	payload := []byte(`{"version":1,"command":"init"}`)

	res, err := rt.Run(context.Background(), Invocation{Entry: entry, Args: []string{"demo"}, Payload: payload})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if got := strings.TrimSpace(stdout.String()); got != "arg=demo" {
		t.Errorf("stdout = %q, want arg=demo", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(payload) {
		t.Errorf("payload = %s, want %s", data, payload)
	}
}

func TestBinaryRuntime_MissingEntry(t *testing.T) {
	rt := &BinaryRuntime{}
	_, err := rt.Run(context.Background(), Invocation{Entry: filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestNodeRuntime_TooOld(t *testing.T) {
	fake := writeScript(t, t.TempDir(), "node", `echo v10.24.1`)

	rt := &NodeRuntime{Binary: fake}
	_, err := rt.Run(context.Background(), Invocation{Entry: "/nowhere/index.js"})

	var envErr *EnvironmentError
	if !errors.As(err, &envErr) {
		t.Fatalf("expected *EnvironmentError, got %v", err)
	}
	if envErr.Found != "v10.24.1" || envErr.Required != MinNodeVersion {
		t.Errorf("EnvironmentError = %+v", envErr)
	}
}

func TestNodeRuntime_MissingBinary(t *testing.T) {
	rt := &NodeRuntime{Binary: filepath.Join(t.TempDir(), "no-node")}
	_, err := rt.Run(context.Background(), Invocation{Entry: "/nowhere/index.js"})

	var envErr *EnvironmentError
	if !errors.As(err, &envErr) {
		t.Fatalf("expected *EnvironmentError, got %v", err)
	}
}

func TestNodeRuntime_ExecModule(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("Node.js not available, skipping")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")
	entry := filepath.Join(dir, "index.js")
	module := `module.exports = function () {
  require("fs").writeFileSync(` + jsString(t, out) + `, JSON.stringify(Array.prototype.slice.call(arguments)));
  process.exitCode = 4;
};
`
	if err := os.WriteFile(entry, []byte(module), 0644); err != nil {
		t.Fatal(err)
	}

	rt := &NodeRuntime{}
	res, err := rt.Run(context.Background(), Invocation{
		Entry:   entry,
		Args:    []string{"demo"},
		Options: map[string]any{"force": true},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ExitCode != 4 {
		t.Errorf("ExitCode = %d, want 4", res.ExitCode)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("module did not run: %v", err)
	}
	var got []any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "demo" {
		t.Fatalf("module arguments = %v", got)
	}
	if opts, ok := got[1].(map[string]any); !ok || opts["force"] != true {
		t.Errorf("options argument = %v", got[1])
	}
}

func jsString(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
