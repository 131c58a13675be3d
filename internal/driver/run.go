package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"refactor/internal/ast"
	"refactor/internal/command"
	"refactor/internal/observ"
	"refactor/internal/project"
	"refactor/internal/snapshot"
	"refactor/internal/transform"
)

const defaultOutSuffix = ".out" + snapshot.Ext

// Request describes one batch run over snapshot files.
type Request struct {
	// Inputs are snapshot files or directories; directories are expanded
	// to every *.mp file beneath them, sorted.
	Inputs []string

	// Transforms are registry invocations, each "name" or "name arg...".
	Transforms []string

	Registry *command.Registry

	// OutSuffix replaces the snapshot extension on output paths.
	// Defaults to ".out.mp".
	OutSuffix string

	// Jobs caps worker parallelism; <=0 means GOMAXPROCS.
	Jobs int

	Progress ProgressSink

	// StdPrefixes overrides the standard-header prefixes for every file.
	// nil defers to the snapshot's manifest, then the built-in default.
	StdPrefixes []string

	// SourceFile overrides the source path recorded in the snapshots.
	SourceFile string

	EnableTimings bool
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string
	OutPath string

	// Applied is the transformed crate; nil when Err is set.
	Applied *ast.Crate

	Err     error
	Timings *observ.Report
}

// Result is the outcome of a batch run.
type Result struct {
	Files []FileResult
}

// Failed reports how many files ended in error.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// DefaultRegistry returns a registry with every built-in transform.
func DefaultRegistry() *command.Registry {
	reg := command.NewRegistry()
	transform.RegisterCommands(reg)
	return reg
}

// ExpandInputs resolves the request's inputs to a sorted list of snapshot
// files. Explicitly named files are accepted as-is, whatever their
// extension.
func ExpandInputs(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, snapshot.Ext) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every input file in parallel: load, apply the requested
// transforms, write the result next to the input. Per-file failures land
// in the result; only setup problems and context cancellation abort the
// batch.
func Run(ctx context.Context, req Request) (*Result, error) {
	files, err := ExpandInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	transforms, err := buildTransforms(req)
	if err != nil {
		return nil, err
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	suffix := req.OutSuffix
	if suffix == "" {
		suffix = defaultOutSuffix
	}

	emit := func(evt Event) {
		if req.Progress != nil {
			req.Progress.OnEvent(evt)
		}
	}
	for _, path := range files {
		emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = processFile(path, OutPath(path, suffix), transforms, req, emit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Result{Files: results}, err
	}
	return &Result{Files: results}, nil
}

// RunFile processes a single file without writing anything, for callers
// that render the result themselves.
func RunFile(ctx context.Context, path string, req Request) (FileResult, error) {
	transforms, err := buildTransforms(req)
	if err != nil {
		return FileResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	res := processFile(path, "", transforms, req, func(Event) {})
	return res, nil
}

// OutPath derives the output path for an input snapshot.
func OutPath(path, suffix string) string {
	return strings.TrimSuffix(path, snapshot.Ext) + suffix
}

func buildTransforms(req Request) ([]command.Transform, error) {
	reg := req.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	if len(req.Transforms) == 0 {
		return nil, fmt.Errorf("no transforms requested")
	}
	transforms := make([]command.Transform, 0, len(req.Transforms))
	for _, spec := range req.Transforms {
		fields := strings.Fields(spec)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty transform spec")
		}
		tr, err := reg.Build(fields[0], fields[1:])
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, tr)
	}
	return transforms, nil
}

func processFile(path, outPath string, transforms []command.Transform, req Request, emit func(Event)) FileResult {
	res := FileResult{Path: path, OutPath: outPath}
	timer := observ.NewTimer()

	fail := func(stage Stage, start time.Time, err error) FileResult {
		res.Err = err
		emit(Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}

	start := time.Now()
	emit(Event{File: path, Stage: StageLoad, Status: StatusWorking})
	idx := timer.Begin("load")
	snap, err := snapshot.Load(path)
	if err != nil {
		return fail(StageLoad, start, err)
	}
	timer.End(idx, "")
	emit(Event{File: path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(start)})

	sess, err := sessionFor(path, snap, req)
	if err != nil {
		return fail(StageTransform, start, err)
	}

	start = time.Now()
	emit(Event{File: path, Stage: StageTransform, Status: StatusWorking})
	crate := snap.Crate
	for _, tr := range transforms {
		if snap.Phase < tr.MinPhase() {
			return fail(StageTransform, start, fmt.Errorf("%s: transform %q needs phase %s, snapshot is at %s",
				path, tr.Name(), tr.MinPhase(), snap.Phase))
		}
		st := command.NewState(snapshot.MaxDeclID(crate))
		idx = timer.Begin(tr.Name())
		crate, err = tr.Apply(crate, st, sess)
		if err != nil {
			return fail(StageTransform, start, fmt.Errorf("%s: %s: %w", path, tr.Name(), err))
		}
		timer.End(idx, "")
	}
	res.Applied = crate
	emit(Event{File: path, Stage: StageTransform, Status: StatusDone, Elapsed: time.Since(start)})

	if outPath != "" {
		start = time.Now()
		emit(Event{File: path, Stage: StageWrite, Status: StatusWorking})
		idx = timer.Begin("write")
		out := &snapshot.Snapshot{
			Phase:      snap.Phase,
			SourceFile: snap.SourceFile,
			Crate:      crate,
		}
		if err := snapshot.Save(outPath, out); err != nil {
			return fail(StageWrite, start, err)
		}
		timer.End(idx, "")
		emit(Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
	}

	if req.EnableTimings {
		report := timer.Report()
		res.Timings = &report
	}
	return res
}

// sessionFor decides the source path and std prefixes for one file:
// request overrides win, then the snapshot's own metadata, then the
// project manifest next to the file.
func sessionFor(path string, snap *snapshot.Snapshot, req Request) (*command.Session, error) {
	sourceFile := req.SourceFile
	if sourceFile == "" {
		sourceFile = snap.SourceFile
	}
	prefixes := req.StdPrefixes

	if sourceFile == "" || prefixes == nil {
		manifest, ok, err := project.Discover(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		if ok {
			if sourceFile == "" {
				sourceFile = manifest.Source()
			}
			if prefixes == nil {
				if configured, defined := manifest.StdPrefixes(); defined {
					prefixes = configured
				}
			}
		}
	}
	return command.NewSession(sourceFile, prefixes), nil
}
