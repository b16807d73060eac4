package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"mdtodo/internal/cli"
	"mdtodo/internal/commands"
	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
	"mdtodo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService
// and records the config it was called with.
func testFactory(svc *testutil.FakeService, got **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		if got != nil {
			*got = cfg
		}
		return svc, nil
	}
}

func mirrorFactory(m *testutil.FakeMirror) cli.MirrorFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Mirror, error) {
		return m, nil
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := d.Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvPendingFile, config.EnvDoneFile, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvMirrorList,
	} {
		t.Setenv(key, "")
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, stdout, stderr := run(t, d, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, stdout, stderr := run(t, d, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "mdtodo 0.1.0\n" {
		t.Errorf("expected 'mdtodo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsValue(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "list", "--todo-file")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -todo-file\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	svc := testutil.NewFakeService()
	svc.AddPending("p1", "buy milk", "2025-01-01")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil), nil)

	code, stdout, stderr := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "buy milk") {
		t.Errorf("expected pending task in output, got %q", stdout)
	}
}

func TestDispatcher_FileFlagsOverrideConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "todo_file = \"/from/config/todos.md\"\ndone_file = \"/from/config/done.md\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var got *config.Config
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), &got), nil)

	code, _, stderr := run(t, d, "list", "--config", dir, "--todo-file", "/flag/todos.md", "--quiet")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if got == nil {
		t.Fatal("factory was not called")
	}
	if got.PendingPath != "/flag/todos.md" {
		t.Errorf("PendingPath = %q, want flag value", got.PendingPath)
	}
	if got.DonePath != "/from/config/done.md" {
		t.Errorf("DonePath = %q, want config file value", got.DonePath)
	}
	if !got.Quiet {
		t.Error("expected Quiet to be set")
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("todo_file = ["), 0644); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "list", "--config", dir)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: loading config file") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	clearEnv(t)
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return nil, errors.New("boom")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory, nil)

	code, _, stderr := run(t, d, "list", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "list", "--config", t.TempDir(), "--debug", "--quiet")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatch") || !strings.Contains(stderr, "command=list") {
		t.Errorf("expected debug line on stderr, got %q", stderr)
	}
}

func TestDispatcher_PushWithoutMirror(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), nil)

	code, _, stderr := run(t, d, "push", "--config", t.TempDir())

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: mdtodo login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_PushMissingCredentials(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	mirror := testutil.NewFakeMirror()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService(), nil), mirrorFactory(mirror))

	code, _, stderr := run(t, d, "push", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	code, _, stderr = run(t, d, "push", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: mdtodo login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_PushInjectsMirror(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	for _, name := range []string{config.OAuthClientFile, config.TokenFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	svc := testutil.NewFakeService()
	svc.AddPending("p1", "buy milk", "2025-01-01")
	mirror := testutil.NewFakeMirror()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc, nil), mirrorFactory(mirror))

	code, stdout, stderr := run(t, d, "push", "--config", dir, "--list", "Groceries")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "created 1, completed 0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	lists := mirror.Lists()
	if len(lists) != 1 || lists[0].Title != "Groceries" {
		t.Fatalf("unexpected lists %+v", lists)
	}
	tasks := mirror.Tasks(lists[0].ID)
	if len(tasks) != 1 || tasks[0].Title != "buy milk" {
		t.Errorf("unexpected remote tasks %+v", tasks)
	}
}
