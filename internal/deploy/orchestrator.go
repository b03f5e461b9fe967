package deploy

import (
	"context"
	"log/slog"

	"github.com/lucass-carneiro/surge-stage/internal/launcher"
	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/logfields"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/postprocess"
	"github.com/lucass-carneiro/surge-stage/internal/staging"
)

// Result is what a successful operation produced. Report is nil for Run and
// Status; Entries is only set by Status.
type Result struct {
	Op      Operation
	Report  *staging.Report
	Entries []staging.Entry
}

// Orchestrator wires the locator, the staging manager and the launcher for
// one platform profile.
type Orchestrator struct {
	manager  *staging.Manager
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// Options configures an Orchestrator.
type Options struct {
	PostProcess postprocess.Step
	Logger      *slog.Logger
}

// NewOrchestrator builds an Orchestrator for profile.
func NewOrchestrator(profile platform.Profile, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		manager: staging.NewManager(locator.New(profile)).
			WithLogger(logger).
			WithPostProcess(opts.PostProcess),
		launcher: launcher.New(profile).WithLogger(logger),
		logger:   logger,
	}
}

// Launcher exposes the launcher so callers can redirect the player's streams.
func (o *Orchestrator) Launcher() *launcher.Launcher {
	return o.launcher
}

// Locator returns the locator shared by every operation of the orchestrator.
func (o *Orchestrator) Locator() *locator.Locator {
	return o.manager.Locator()
}

// Execute runs op against req. Invalid requests fail with a usage error
// before the filesystem is touched.
func (o *Orchestrator) Execute(ctx context.Context, op Operation, req locator.Request) (Result, error) {
	res := Result{Op: op}

	if err := req.Validate(); err != nil {
		return res, Usage(err)
	}
	if op.needsModule() {
		if err := req.RequireModule(); err != nil {
			return res, Usage(err)
		}
	}

	o.logger.Debug("Executing operation",
		logfields.Op(op.String()),
		logfields.Configuration(req.Configuration.String()),
		logfields.Module(req.Module),
		logfields.Path(req.OutputDirectory))

	var err error
	switch op {
	case New:
		res.Report, err = o.manager.New(ctx, req)
	case Delete:
		res.Report, err = o.manager.Delete(req)
	case Populate:
		res.Report, err = o.manager.Populate(req)
	case Update:
		res.Report, err = o.manager.Update(req)
	case Activate:
		res.Report, err = o.manager.Activate(req)
	case Status:
		res.Entries, err = o.manager.Status(req)
	case Run:
		err = o.launcher.Run(ctx, req)
	default:
		err = Usage(unknownOperation(op))
	}
	return res, err
}
