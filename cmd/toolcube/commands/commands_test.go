package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/cmd/toolcube/commands"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/adapters/telemetry"
	"github.com/toolcube/toolcube/internal/app"
	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports/mocks"
	"github.com/toolcube/toolcube/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

// testCLI wires a CLI around an App whose collaborators are mocks, so flag
// and argument plumbing can be asserted without touching the network or a
// real package manager.
type testCLI struct {
	cli       *commands.CLI
	loader    *mocks.MockManifestLoader
	locks     *mocks.MockLockStore
	ledgers   *mocks.MockLedgerStore
	bootstrap *mocks.MockBootstrapper
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logger.New()

	tc := &testCLI{
		loader:    mocks.NewMockManifestLoader(ctrl),
		locks:     mocks.NewMockLockStore(ctrl),
		ledgers:   mocks.NewMockLedgerStore(ctrl),
		bootstrap: mocks.NewMockBootstrapper(ctrl),
	}
	a := app.New(
		log, tc.loader, tc.locks, tc.ledgers, reconcile.NewEvaluator(log),
		mocks.NewMockPackageManager(ctrl), tc.bootstrap,
		mocks.NewMockInstaller(ctrl), mocks.NewMockMirror(ctrl),
		mocks.NewMockBuildRunner(ctrl), telemetry.NewNoop(),
	)
	tc.cli = commands.New(a, log)
	return tc
}

func TestVersionCommand(t *testing.T) {
	tc := newTestCLI(t)
	tc.cli.SetArgs([]string{"version"})
	assert.NoError(t, tc.cli.Execute(t.Context()))
}

func TestRootPassesToolDirArgument(t *testing.T) {
	tc := newTestCLI(t)
	toolDir := t.TempDir()

	tc.loader.EXPECT().Load(toolDir).Return(nil, domain.ErrMissingManifest)

	tc.cli.SetArgs([]string{toolDir, "-p", t.TempDir()})
	err := tc.cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrMissingManifest)
}

func TestRootDefaultsToolDirToCwd(t *testing.T) {
	tc := newTestCLI(t)

	tc.loader.EXPECT().Load(".").Return(nil, domain.ErrMissingManifest)

	tc.cli.SetArgs([]string{"-p", t.TempDir()})
	err := tc.cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrMissingManifest)
}

func TestRootPrefixFallsBackToEnvironment(t *testing.T) {
	tc := newTestCLI(t)
	toolDir := t.TempDir()
	envPrefix := t.TempDir()
	t.Setenv("INSTALL_PREFIX", envPrefix)

	cfg := &domain.ToolConfig{Name: "mytool", Version: "1.0.0"}
	var ledgerPath string

	tc.loader.EXPECT().Load(toolDir).Return(cfg, nil)
	tc.locks.EXPECT().Read(gomock.Any()).Return(nil, nil)
	tc.ledgers.EXPECT().Read(gomock.Any()).DoAndReturn(func(path string) (domain.Ledger, error) {
		ledgerPath = path
		return nil, nil
	})
	// Abort the deployment at the bootstrap step; the prefix has been
	// resolved by then.
	tc.bootstrap.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return("", assert.AnError)

	tc.cli.SetArgs([]string{toolDir})
	err := tc.cli.Execute(t.Context())
	require.Error(t, err)
	assert.Equal(t, filepath.Join(envPrefix, "mytool", ".versions.json"), ledgerPath)
}

func TestRootVerboseShorthandRepeats(t *testing.T) {
	tc := newTestCLI(t)
	toolDir := t.TempDir()

	tc.loader.EXPECT().Load(toolDir).Return(nil, domain.ErrMissingManifest)

	// The repeatable -v shorthand must not clash with any other flag.
	tc.cli.SetArgs([]string{"-vv", "-p", t.TempDir(), toolDir})
	err := tc.cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrMissingManifest)
}

func TestRootRejectsExtraArguments(t *testing.T) {
	tc := newTestCLI(t)
	tc.cli.SetArgs([]string{"dir-one", "dir-two"})
	assert.Error(t, tc.cli.Execute(t.Context()))
}
