package install

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  PackageManager
		ok    bool
	}{
		{"npm", NPM, true},
		{"pnpm", PNPM, true},
		{"Yarn", Yarn, true},
		{" bun ", Bun, true},
		{"deno", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := Parse(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		agent string
		want  PackageManager
	}{
		{"yarn/1.22.22 npm/? node/v20.11.0 darwin arm64", Yarn},
		{"pnpm/9.1.0 npm/? node/v20.11.0 linux x64", PNPM},
		{"bun/1.1.0 npm/? node/v21.0.0 linux x64", Bun},
		{"npm/10.2.4 node/v20.11.0 linux x64", NPM},
		{"", NPM},
	}
	for _, tc := range cases {
		if got := Detect(tc.agent); got != tc.want {
			t.Errorf("Detect(%q) = %q, want %q", tc.agent, got, tc.want)
		}
	}
}

func TestDetectFromEnv(t *testing.T) {
	t.Setenv("npm_config_user_agent", "pnpm/9.1.0 npm/? node/v20.11.0")
	if got := DetectFromEnv(); got != PNPM {
		t.Errorf("DetectFromEnv() = %q, want pnpm", got)
	}
}

func TestRunScript(t *testing.T) {
	if got := NPM.RunScript("dev"); got != "npm run dev" {
		t.Errorf("NPM.RunScript = %q", got)
	}
	if got := Yarn.RunScript("dev"); got != "yarn dev" {
		t.Errorf("Yarn.RunScript = %q", got)
	}
}

func TestInstallArgs(t *testing.T) {
	tests := []struct {
		manager PackageManager
		offline bool
		want    []string
	}{
		{NPM, false, []string{"install"}},
		{NPM, true, []string{"install"}},
		{Yarn, false, []string{"install"}},
		{Yarn, true, []string{"install", "--offline"}},
	}
	for _, tt := range tests {
		if got := installArgs(tt.manager, tt.offline); !slices.Equal(got, tt.want) {
			t.Errorf("installArgs(%s, %v) = %v, want %v", tt.manager, tt.offline, got, tt.want)
		}
	}
}

func TestInstallEnv(t *testing.T) {
	env := installEnv([]string{"PATH=/bin", "NODE_ENV=production"})
	for _, want := range []string{"PATH=/bin", "NODE_ENV=development", "ADBLOCK=1", "DISABLE_OPENCOLLECTIVE=1"} {
		if !slices.Contains(env, want) {
			t.Errorf("env %v missing %q", env, want)
		}
	}
	if slices.Contains(env, "NODE_ENV=production") {
		t.Error("NODE_ENV should be overridden")
	}
}

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		key      string
		value    string
		expected []string
	}{
		{
			name:     "add new variable",
			env:      []string{"FOO=bar"},
			key:      "BAZ",
			value:    "qux",
			expected: []string{"FOO=bar", "BAZ=qux"},
		},
		{
			name:     "replace existing variable",
			env:      []string{"FOO=bar", "BAZ=old"},
			key:      "BAZ",
			value:    "new",
			expected: []string{"FOO=bar", "BAZ=new"},
		},
		{
			name:     "add to empty env",
			env:      nil,
			key:      "KEY",
			value:    "val",
			expected: []string{"KEY=val"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := setEnv(tt.env, tt.key, tt.value)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("setEnv() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// fakeManager puts an executable named npm on PATH that records its
// arguments and environment into the working directory.
func fakeManager(t *testing.T, exitCode int) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake package manager needs a Unix shell")
	}
	bin := t.TempDir()
	script := "#!/bin/sh\n" +
		"echo \"$@|$ADBLOCK|$NODE_ENV|$DISABLE_OPENCOLLECTIVE\" > invoked.txt\n" +
		"echo installing\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(filepath.Join(bin, "npm"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin)
}

func TestRunnerInstall(t *testing.T) {
	fakeManager(t, 0)
	project := t.TempDir()

	var stdout bytes.Buffer
	r := &Runner{Manager: NPM, Stdout: &stdout, Stderr: &stdout}
	if err := r.Install(context.Background(), project); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(project, "invoked.txt"))
	if err != nil {
		t.Fatalf("package manager did not run in the project directory: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "install|1|development|1" {
		t.Errorf("invocation = %q", got)
	}
	if !strings.Contains(stdout.String(), "installing") {
		t.Errorf("stdout = %q, want installer output", stdout.String())
	}
}

func TestRunnerInstallExitCode(t *testing.T) {
	fakeManager(t, 3)

	r := &Runner{Manager: NPM, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Install(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "exited with code 3") {
		t.Errorf("error = %v", err)
	}
}

func TestRunnerInstallMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	r := &Runner{Manager: Bun}
	if err := r.Install(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error when the package manager is not on PATH")
	}
}
