package internal

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps controller and middleware names to factories.
// It is populated during setup and read concurrently afterwards.
type Registry struct {
	controllers map[string]ControllerFactory
	middleware  map[string]MiddlewareFactory
	mu          sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[string]ControllerFactory),
		middleware:  make(map[string]MiddlewareFactory),
	}
}

// RegisterController binds name to a controller factory.
// Registering the same name twice panics.
func (r *Registry) RegisterController(name string, f ControllerFactory) {
	if name == "" || f == nil {
		panic("zenith: RegisterController requires a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.controllers[name]; ok {
		panic(fmt.Sprintf("zenith: controller %q registered twice", name))
	}
	r.controllers[name] = f
}

// RegisterMiddleware binds name to a middleware factory.
// Registering the same name twice panics.
func (r *Registry) RegisterMiddleware(name string, f MiddlewareFactory) {
	if name == "" || f == nil {
		panic("zenith: RegisterMiddleware requires a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.middleware[name]; ok {
		panic(fmt.Sprintf("zenith: middleware %q registered twice", name))
	}
	r.middleware[name] = f
}

// Controller instantiates the named controller.
func (r *Registry) Controller(name string) (Controller, error) {
	r.mu.RLock()
	f, ok := r.controllers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConfigurationError{Controller: name, Reason: "is not registered"}
	}
	c := f()
	if c == nil {
		return nil, &ConfigurationError{Controller: name, Reason: "factory returned nil"}
	}
	return c, nil
}

// Middleware instantiates the named middleware.
func (r *Registry) Middleware(name string) (Middleware, error) {
	r.mu.RLock()
	f, ok := r.middleware[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConfigurationError{Middleware: name, Reason: "is not registered"}
	}
	m := f()
	if m == nil {
		return nil, &ConfigurationError{Middleware: name, Reason: "factory returned nil"}
	}
	return m, nil
}

// ControllerNames returns the registered controller names, sorted.
func (r *Registry) ControllerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.controllers))
}
