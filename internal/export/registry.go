package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnavailable is returned when exporting to a format that is not Ready.
	ErrUnavailable = errors.New("export format unavailable")
	// ErrUnknownFormat is returned for formats nobody registered.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Availability is the load state of an export format.
type Availability int

const (
	Unloaded Availability = iota
	Ready
	Failed
)

func (a Availability) String() string {
	switch a {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Registry gates exporters behind a one-time load. A format that fails to
// load stays disabled for the life of the registry.
type Registry struct {
	logger *zap.Logger

	mu        sync.RWMutex
	order     []Format
	exporters map[Format]Exporter
	state     map[Format]Availability
	errs      map[Format]error
}

// NewRegistry registers exporters in display order.
func NewRegistry(logger *zap.Logger, exporters ...Exporter) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		logger:    logger,
		exporters: make(map[Format]Exporter, len(exporters)),
		state:     make(map[Format]Availability, len(exporters)),
		errs:      make(map[Format]error),
	}
	for _, e := range exporters {
		f := e.Format()
		if _, dup := r.exporters[f]; !dup {
			r.order = append(r.order, f)
		}
		r.exporters[f] = e
		r.state[f] = Unloaded
	}
	return r
}

// DefaultRegistry holds the JSON, PDF, DOCX and Markdown exporters.
func DefaultRegistry(logger *zap.Logger) *Registry {
	return NewRegistry(logger, NewJSON(), NewPDF(), NewDOCX(), NewMarkdown())
}

// Formats lists registered formats in registration order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, len(r.order))
	copy(out, r.order)
	return out
}

// Status reports a format's availability and, when Failed, why.
func (r *Registry) Status(f Format) (Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.state[f]
	if !ok {
		return Failed, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return a, r.errs[f]
}

// Ready reports whether f can be exported now.
func (r *Registry) Ready(f Format) bool {
	a, _ := r.Status(f)
	return a == Ready
}

// Exporter returns the exporter registered for f.
func (r *Registry) Exporter(f Format) (Exporter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exporters[f]
	return e, ok
}

// Load probes every Unloaded format concurrently and records the result.
// It returns the joined probe failures; those formats become Failed and
// the rest stay usable.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.RLock()
	var pending []Format
	for _, f := range r.order {
		if r.state[f] == Unloaded {
			pending = append(pending, f)
		}
	}
	r.mu.RUnlock()

	errs := make([]error, len(pending))
	var g errgroup.Group
	for i, f := range pending {
		e, _ := r.Exporter(f)
		g.Go(func() error {
			err := probe(ctx, e)
			r.mu.Lock()
			if err != nil {
				r.state[f] = Failed
				r.errs[f] = err
			} else {
				r.state[f] = Ready
			}
			r.mu.Unlock()
			if err != nil {
				r.logger.Warn("export format unavailable", zap.String("format", string(f)), zap.Error(err))
				errs[i] = fmt.Errorf("%s: %w", f, err)
			} else {
				r.logger.Debug("export format ready", zap.String("format", string(f)))
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func probe(ctx context.Context, e Exporter) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, ok := e.(Prober)
	if !ok {
		return nil
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("probe panicked: %v", v)
		}
	}()
	return p.Probe()
}

// Export writes s as format f. Exporter failures, panics included, are
// returned as errors; nothing is retried.
func (r *Registry) Export(w io.Writer, f Format, s Snapshot) (err error) {
	a, loadErr := r.Status(f)
	switch {
	case errors.Is(loadErr, ErrUnknownFormat):
		return loadErr
	case a != Ready:
		if loadErr != nil {
			return fmt.Errorf("%w: %s: %v", ErrUnavailable, f, loadErr)
		}
		return fmt.Errorf("%w: %s is %s", ErrUnavailable, f, a)
	}
	e, _ := r.Exporter(f)
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%s export panicked: %v", f, v)
		}
	}()
	return e.Write(w, s)
}
