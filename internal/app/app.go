// Package app implements the environment lifecycle driver.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toolcube/toolcube/internal/adapters/ledger" //nolint:depguard // On-disk file name, wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/lock"   //nolint:depguard // On-disk file name, wired in app layer
	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
	"github.com/toolcube/toolcube/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// infraPackages are always installed into a freshly solved environment so
// every tool can rely on them at runtime.
var infraPackages = []string{"jq", "mamba", "websockets"}

// defaultChannels are the package channels used when solving from scratch.
var defaultChannels = []string{"conda-forge"}

// Options are the per-invocation deployment options.
type Options struct {
	// ToolDir is the tool definition directory holding the manifest.
	ToolDir string

	// Prefix is the root under which environments are installed.
	Prefix string

	// Dev installs the tool's own Python project in editable mode.
	Dev bool

	// Force recreates the environment without consulting the lock file.
	Force bool
}

// App drives one tool deployment from manifest to ready environment.
type App struct {
	logger    ports.Logger
	loader    ports.ManifestLoader
	locks     ports.LockStore
	ledgers   ports.LedgerStore
	evaluator *reconcile.Evaluator
	manager   ports.PackageManager
	bootstrap ports.Bootstrapper
	installer ports.Installer
	mirror    ports.Mirror
	builder   ports.BuildRunner
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(
	logger ports.Logger,
	loader ports.ManifestLoader,
	locks ports.LockStore,
	ledgers ports.LedgerStore,
	evaluator *reconcile.Evaluator,
	manager ports.PackageManager,
	bootstrap ports.Bootstrapper,
	installer ports.Installer,
	mirror ports.Mirror,
	builder ports.BuildRunner,
	telemetry ports.Telemetry,
) *App {
	return &App{
		logger:    logger,
		loader:    loader,
		locks:     locks,
		ledgers:   ledgers,
		evaluator: evaluator,
		manager:   manager,
		bootstrap: bootstrap,
		installer: installer,
		mirror:    mirror,
		builder:   builder,
		telemetry: telemetry,
	}
}

// Deploy provisions the environment for the tool defined in opts.ToolDir:
// it evaluates staleness against the lock file and ledger, recreates the
// environment when needed, layers pip packages, updates the ledger, mirrors
// the tool sources into the environment's share directory and runs the
// optional build step.
func (a *App) Deploy(ctx context.Context, opts Options) error {
	cfg, err := a.loader.Load(opts.ToolDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load tool manifest")
	}

	envParent := filepath.Join(opts.Prefix, cfg.Name)
	envDir := filepath.Join(envParent, cfg.EnvVersion())
	lockPath := filepath.Join(opts.ToolDir, lock.FileName)
	ledgerPath := filepath.Join(envParent, ledger.FileName)

	// The micromamba scratch dir is bootstrapped lazily: the reuse path
	// only needs the binary when a build step runs.
	scratch := ""
	defer func() {
		if scratch != "" {
			_ = os.RemoveAll(scratch)
		}
	}()
	ensureManager := func() error {
		if scratch != "" {
			return nil
		}
		scratch, err = a.bootstrapManager(ctx)
		return err
	}

	lf, err := a.readLock(lockPath)
	if err != nil {
		return err
	}
	led, err := a.ledgers.Read(ledgerPath)
	if err != nil {
		a.logger.Warn("discarding unreadable version ledger", "path", ledgerPath, "error", err.Error())
		led = nil
	}

	recreate := true
	if opts.Force {
		a.logger.Info("forced recreation", "tool", cfg.Name)
	} else {
		recreate, err = a.evaluator.Evaluate(cfg.RunDependencies, lf, led, envParent)
		if err != nil {
			return err
		}
	}

	if recreate {
		if lf != nil {
			// Persist the evaluator's lock mutations before recreating
			// from it.
			if err := a.locks.Write(lockPath, lf); err != nil {
				return err
			}
		}
		if err := ensureManager(); err != nil {
			return err
		}
		if err := a.recreate(ctx, cfg, opts, envDir, lockPath, lf != nil); err != nil {
			return err
		}
	} else {
		// The reuse decision still shows up in the recording, as a cache hit.
		_, vertex := a.telemetry.Record(ctx, "create environment "+cfg.Name)
		vertex.Cached()
		a.logger.Info("environment up to date", "tool", cfg.Name, "version", cfg.EnvVersion())
	}

	if led == nil {
		led = domain.Ledger{}
	}
	if recreate {
		led.Record(cfg.Version, envDir)
	} else {
		led.CopyForward(cfg.Version)
	}
	if err := a.ledgers.Write(ledgerPath, led); err != nil {
		return err
	}

	installDir := led.Latest()
	shareDir := filepath.Join(installDir, "share", "tool", cfg.Name)
	if err := a.mirror.Sync(opts.ToolDir, shareDir); err != nil {
		return zerr.Wrap(err, "failed to mirror tool sources")
	}

	buildScript := filepath.Join(shareDir, "build.sh")
	if len(cfg.Build.Dependencies) > 0 || fileExists(buildScript) {
		if err := ensureManager(); err != nil {
			return err
		}
		if err := a.build(ctx, cfg, opts, installDir, buildScript); err != nil {
			_ = os.RemoveAll(envDir)
			return err
		}
	}

	a.logger.Info("tool deployed", "tool", cfg.Name, "path", installDir)
	return nil
}

// readLock loads the lock file, deleting it when it exists but cannot be
// parsed so the deployment proceeds as if it were absent.
func (a *App) readLock(path string) (*domain.Lockfile, error) {
	lf, err := a.locks.Read(path)
	if err != nil {
		if !errors.Is(err, domain.ErrUnreadableLock) {
			return nil, err
		}
		a.logger.Warn("discarding unreadable lock file", "path", path)
		_ = os.Remove(path)
		return nil, nil
	}
	return lf, nil
}

// bootstrapManager downloads micromamba into a fresh scratch directory and
// points the package manager at it. The caller owns the returned directory.
func (a *App) bootstrapManager(ctx context.Context) (string, error) {
	scratch, err := os.MkdirTemp("", "toolcube-micromamba-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create scratch directory")
	}

	vctx, vertex := a.telemetry.Record(ctx, "download micromamba")
	bin, err := a.bootstrap.Fetch(vctx, scratch)
	vertex.Complete(err)
	if err != nil {
		_ = os.RemoveAll(scratch)
		return "", err
	}

	a.manager.SetBinary(bin)
	return scratch, nil
}

// recreate replaces the environment at envDir, re-exports the concrete
// solved state into the lock file and layers pip packages on top. Any
// failure removes envDir so the next run starts from a clean absent state.
func (a *App) recreate(ctx context.Context, cfg *domain.ToolConfig, opts Options, envDir, lockPath string, haveLock bool) error {
	if err := os.RemoveAll(envDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove stale environment"), "path", envDir)
	}

	exported, err := a.createAndExport(ctx, "create environment "+cfg.Name, envDir, lockPath, haveLock, withInfraPackages(cfg.RunDependencies))
	if err != nil {
		_ = os.RemoveAll(envDir)
		return err
	}
	if err := a.locks.Write(lockPath, exported); err != nil {
		_ = os.RemoveAll(envDir)
		return err
	}

	if err := a.layerPip(ctx, opts, envDir); err != nil {
		_ = os.RemoveAll(envDir)
		return err
	}
	return nil
}

// createAndExport builds an environment at prefix, either from an existing
// lock file or by solving the given specifiers, and returns the exported
// concrete state.
func (a *App) createAndExport(ctx context.Context, step, prefix, lockPath string, haveLock bool, specs []string) (*domain.Lockfile, error) {
	vctx, vertex := a.telemetry.Record(ctx, step)
	var err error
	if haveLock {
		err = a.manager.CreateFromLock(vctx, prefix, lockPath)
	} else {
		err = a.manager.Create(vctx, prefix, defaultChannels, specs)
	}
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}

	exported, err := a.manager.Export(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(exported.Channels) == 0 {
		exported.Channels = defaultChannels
	}
	return exported, nil
}

// layerPip installs the tool directory's pip layer into the environment:
// a requirements file when present, then the tool's own Python project when
// it carries packaging metadata.
func (a *App) layerPip(ctx context.Context, opts Options, envDir string) error {
	reqs := filepath.Join(opts.ToolDir, "requirements.txt")
	if fileExists(reqs) {
		vctx, vertex := a.telemetry.Record(ctx, "install requirements")
		err := a.installer.Install(vctx, envDir, []string{"-r", reqs})
		vertex.Complete(err)
		if err != nil {
			return err
		}
	}

	for _, marker := range []string{"setup.py", "setup.cfg", "pyproject.toml"} {
		if !fileExists(filepath.Join(opts.ToolDir, marker)) {
			continue
		}
		args := []string{opts.ToolDir}
		if opts.Dev {
			args = []string{"-e", opts.ToolDir}
		}
		vctx, vertex := a.telemetry.Record(ctx, "install tool package")
		err := a.installer.Install(vctx, envDir, args)
		vertex.Complete(err)
		if err != nil {
			return err
		}
		break
	}
	return nil
}

// build provisions a transient build environment when the manifest declares
// build dependencies, then runs build.sh while that environment is alive.
// The build environment's bin dir and the install's bin dir are prepended
// to PATH for the script.
func (a *App) build(ctx context.Context, cfg *domain.ToolConfig, opts Options, installDir, script string) error {
	buildEnv := ""
	if len(cfg.Build.Dependencies) > 0 {
		dir, err := os.MkdirTemp("", "toolcube-buildenv-*")
		if err != nil {
			return zerr.Wrap(err, "failed to create build environment directory")
		}
		defer func() { _ = os.RemoveAll(dir) }()

		buildLockPath := filepath.Join(opts.ToolDir, lock.BuildFileName)
		buildLock, err := a.readLock(buildLockPath)
		if err != nil {
			return err
		}
		buildEnv = filepath.Join(dir, "env")
		exported, err := a.createAndExport(ctx, "create build environment", buildEnv, buildLockPath, buildLock != nil, cfg.Build.Dependencies)
		if err != nil {
			return err
		}
		if err := a.locks.Write(buildLockPath, exported); err != nil {
			return err
		}
	}

	if !fileExists(script) {
		return nil
	}

	vctx, vertex := a.telemetry.Record(ctx, "run build script")
	err := a.builder.Run(vctx, script, buildEnviron(buildEnv, installDir))
	vertex.Complete(err)
	if err != nil {
		return zerr.Wrap(err, "tool build failed")
	}
	return nil
}

// withInfraPackages appends the infra packages a tool's specifiers do not
// already name.
func withInfraPackages(requested []string) []string {
	specs := slices.Clone(requested)
	for _, infra := range infraPackages {
		present := slices.ContainsFunc(specs, func(raw string) bool {
			spec, err := domain.ParseSpecifier(raw)
			return err == nil && spec.Name == infra
		})
		if !present {
			specs = append(specs, infra)
		}
	}
	return specs
}

// buildEnviron returns the process environment for build.sh with the build
// environment's and the install's bin directories prepended to PATH.
func buildEnviron(buildEnv, installDir string) []string {
	dirs := make([]string, 0, 3)
	if buildEnv != "" {
		dirs = append(dirs, filepath.Join(buildEnv, "bin"))
	}
	dirs = append(dirs, filepath.Join(installDir, "bin"), os.Getenv("PATH"))
	return append(os.Environ(), "PATH="+strings.Join(dirs, string(os.PathListSeparator)))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
