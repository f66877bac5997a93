package materialize

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Executor applies plans through synthfs
type Executor struct {
	fs     synthfilesystem.FullFileSystem
	logger zerolog.Logger
}

// NewExecutor creates an executor writing to fsys. Paths in the plan are
// absolute, so fsys must take absolute paths (see filesystem.NewSynthOS).
func NewExecutor(fsys synthfilesystem.FullFileSystem) *Executor {
	return &Executor{
		fs:     fsys,
		logger: logging.GetLogger("materialize.execute"),
	}
}

// Execute applies the plan's operations, directories first. Each operation
// runs in its own pipeline, so a failure does not stop the rest. It returns
// the executed operations together with the failures.
func (e *Executor) Execute(ctx context.Context, plan *Plan) ([]types.Operation, []Issue) {
	defer logging.LogOperationStart(e.logger, "execute")()

	var done []types.Operation
	var failed []Issue
	for i, op := range plan.Ordered() {
		if err := e.run(ctx, i, op); err != nil {
			e.logger.Error().Err(err).Str("castle", op.Castle).Str("path", op.Path).Msg("Operation failed")
			op.Status = types.StatusError
			failed = append(failed, Issue{Castle: op.Castle, Path: op.Path, Severity: SeverityError, Err: err})
			continue
		}

		e.logger.Debug().Str("op", op.String()).Msg("Operation done")
		op.Status = types.StatusDone
		done = append(done, op)
	}

	e.logger.Info().Int("done", len(done)).Int("failed", len(failed)).Msg("Plan executed")
	return done, failed
}

func (e *Executor) run(ctx context.Context, i int, op types.Operation) error {
	sfs := synthfs.New()
	id := fmt.Sprintf("%s:%s:%d", op.Type, op.Castle, i)

	var sop synthfs.Operation
	switch op.Type {
	case types.OperationCreateDir:
		sop = sfs.CreateDirWithID(id, op.Target, op.Mode)
	case types.OperationCreateSymlink:
		sop = sfs.CreateSymlinkWithID(id, op.Source, op.Target)
	default:
		return errors.Newf(errors.ErrInternal, "unknown operation type %s", op.Type)
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	result, err := synthfs.RunWithOptions(ctx, e.fs, options, sop)
	if err == nil {
		err = failure(result, sop.ID())
	}
	if err == nil {
		return nil
	}

	if op.Type == types.OperationCreateDir {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", op.Target).
			WithDetail("path", op.Target)
	}

	code := errors.ErrSymlinkCreate
	if stderrors.Is(err, fs.ErrExist) || e.exists(op.Target) {
		code = errors.ErrLinkConflict
	}
	return errors.Wrapf(err, code, "failed to link %s", op.Target).
		WithDetail("path", op.Target).
		WithDetail("source", op.Source)
}

// failure returns the error recorded for id when the operation did not
// succeed
func failure(result *synthfs.Result, id synthfs.OperationID) error {
	if result == nil {
		return nil
	}
	for _, r := range result.GetOperations() {
		opResult, ok := r.(synthfs.OperationResult)
		if !ok || opResult.OperationID != id || opResult.Status == synthfs.StatusSuccess {
			continue
		}
		if opResult.Error != nil {
			return opResult.Error
		}
		return fmt.Errorf("operation %s ended with status %v", id, opResult.Status)
	}
	return nil
}

// exists reports whether anything, a dangling symlink included, is at path
func (e *Executor) exists(path string) bool {
	if _, err := e.fs.Readlink(path); err == nil {
		return true
	}
	_, err := e.fs.Stat(path)
	return err == nil
}
