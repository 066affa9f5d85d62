package typeconv

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/wippyai/typeconv/errors"
)

// Typed is implemented by services bound to the runtime type they manage.
type Typed interface {
	ManagedType() reflect.Type
}

// Services is a registry of typed services keyed by managed type.
// It is safe for concurrent use.
type Services struct {
	byType map[reflect.Type]Typed
	mu     sync.RWMutex
}

// NewServices returns an empty service registry.
func NewServices() *Services {
	return &Services{
		byType: make(map[reflect.Type]Typed),
	}
}

// Register adds s under its managed type. A type may have one service.
func (r *Services) Register(s Typed) error {
	if s == nil {
		return errors.InvalidArgument(errors.PhaseRegister, "service cannot be nil")
	}
	t := s.ManagedType()
	if t == nil {
		return errors.InvalidArgument(errors.PhaseRegister, "service manages no type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[t]; exists {
		return errors.New(errors.PhaseRegister, errors.KindInvalidArgument).
			OutputType(t.String()).
			Detail("a service for this type is already registered").
			Build()
	}
	r.byType[t] = s
	return nil
}

// Lookup returns the service managing t.
func (r *Services) Lookup(t reflect.Type) (Typed, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byType[t]
	return s, ok
}

// Types returns the managed types, sorted by name.
func (r *Services) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// ServiceFor returns the service managing t as an S.
func ServiceFor[S Typed](r *Services, t reflect.Type) (S, bool) {
	var zero S
	s, ok := r.Lookup(t)
	if !ok {
		return zero, false
	}
	typed, ok := s.(S)
	return typed, ok
}
