package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/custodia-labs/sercha-tmx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

const (
	sampleFile = "testdata/sample.tmx"
	brokenFile = "testdata/broken.tmx"
)

// TestMain checks every command stops its engine goroutine.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// resetFlags restores flag variables, which persist between Execute calls.
func resetFlags() {
	verbose = false
	configDir = ""
	infoJSON = false
	searchMode = "full_text"
	searchBatch = ""
	searchPage = 1
	searchLimit = 0
	searchJSON = false
	tuiWatch = false
	mcpWatch = false
}

// useConfig replaces the config store with an in-memory one holding values.
func useConfig(t *testing.T, values map[string]any) {
	t.Helper()
	orig := newConfigStore
	newConfigStore = func(string) (driven.ConfigStore, error) {
		return memory.NewConfigStore(values), nil
	}
	t.Cleanup(func() { newConfigStore = orig })
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args against an empty in-memory config
// unless the test installed its own.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		logger.SetVerbose(false)
		logger.SetOutput(io.Discard)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
