package convert

import (
	"cmp"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/wippyai/typeconv/errors"
	"go.uber.org/zap"
)

// Registry holds converter descriptors and ranks them for a type pair.
//
// Readers work on an immutable snapshot and never lock. Each registration
// publishes a new snapshot, so registering while other goroutines call Find
// is safe. The zero value is an empty registry ready to use.
type Registry struct {
	snap atomic.Pointer[snapshot]
	mu   sync.Mutex
	next uint64
}

type snapshot struct {
	found sync.Map // pairKey -> []Descriptor
	descs []Descriptor
	names map[string]struct{}
}

type pairKey struct {
	in  reflect.Type
	out reflect.Type
}

var emptySnapshot = &snapshot{}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) load() *snapshot {
	if s := r.snap.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// Register validates d and adds it. Names must be unique.
func (r *Registry) Register(d Descriptor) error {
	return r.RegisterAll(d)
}

// RegisterAll adds every descriptor or none of them.
func (r *Registry) RegisterAll(ds ...Descriptor) error {
	for _, d := range ds {
		if err := validate(d); err != nil {
			return errors.Registration(d.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.load()
	names := make(map[string]struct{}, len(old.names)+len(ds))
	for name := range old.names {
		names[name] = struct{}{}
	}
	for _, d := range ds {
		if _, dup := names[d.Name]; dup {
			return errors.Registration(d.Name,
				errors.InvalidArgument(errors.PhaseRegister, "duplicate converter name"))
		}
		names[d.Name] = struct{}{}
	}

	descs := make([]Descriptor, len(old.descs), len(old.descs)+len(ds))
	copy(descs, old.descs)
	for _, d := range ds {
		r.next++
		d.seq = r.next
		descs = append(descs, d)

		Logger().Debug("converter registered",
			zap.String("converter", d.Name),
			zap.Stringer("input", d.Input),
			zap.Stringer("output", d.Output),
			zap.Int("priority", d.Priority),
		)
	}

	r.snap.Store(&snapshot{descs: descs, names: names})
	return nil
}

func validate(d Descriptor) error {
	switch {
	case d.Name == "":
		return errors.InvalidArgument(errors.PhaseRegister, "converter name is empty")
	case d.Input == nil:
		return errors.InvalidArgument(errors.PhaseRegister, "input type is nil")
	case d.Output == nil:
		return errors.InvalidArgument(errors.PhaseRegister, "output type is nil")
	case d.Convert == nil:
		return errors.InvalidArgument(errors.PhaseRegister, "convert func is nil")
	}
	return nil
}

// Find returns the descriptors accepting in -> out, best first: higher
// priority, then higher specificity, then earlier registration. The result is
// empty when nothing matches and is owned by the caller.
func (r *Registry) Find(in, out reflect.Type) []Descriptor {
	if in == nil || out == nil {
		return nil
	}

	s := r.load()
	key := pairKey{in: in, out: out}
	if cached, ok := s.found.Load(key); ok {
		return slices.Clone(cached.([]Descriptor))
	}

	var candidates []Descriptor
	for _, d := range s.descs {
		if d.matches(in, out) {
			candidates = append(candidates, d)
		}
	}

	slices.SortStableFunc(candidates, func(a, b Descriptor) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		if c := cmp.Compare(Specificity(a, in, out), Specificity(b, in, out)); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	if s != emptySnapshot {
		s.found.Store(key, candidates)
	}

	Logger().Debug("converters selected",
		zap.Stringer("input", in),
		zap.Stringer("output", out),
		zap.Int("candidates", len(candidates)),
	)

	return slices.Clone(candidates)
}

// CanConvert reports whether any descriptor accepts in -> out.
func (r *Registry) CanConvert(in, out reflect.Type) bool {
	return len(r.Find(in, out)) > 0
}

// Descriptors returns every registered descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	return slices.Clone(r.load().descs)
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.load().descs)
}
