package internal

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// routesFile is the YAML shape accepted by LoadRoutes.
//
//	routes:
//	  - method: GET
//	    path: /users/{id}
//	    handler: UserController@show
//	    middleware: [auth]
//	  - prefix: /admin
//	    middleware: [auth, admin]
//	    routes:
//	      - method: DELETE
//	        path: /users/{id}
//	        handler: UserController@destroy
type routesFile struct {
	Routes []routeEntry `yaml:"routes"`
}

type routeEntry struct {
	Method     string       `yaml:"method"`
	Path       string       `yaml:"path"`
	Handler    string       `yaml:"handler"`
	Middleware []string     `yaml:"middleware"`
	Prefix     string       `yaml:"prefix"`
	Routes     []routeEntry `yaml:"routes"`
}

// LoadRoutesFile reads a YAML routes file and registers its routes on r.
func LoadRoutesFile(r Registrar, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoutesFile, err)
	}
	return LoadRoutes(r, data)
}

// LoadRoutesFS reads a YAML routes file from fsys and registers its routes on r.
func LoadRoutesFS(r Registrar, fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoutesFile, err)
	}
	return LoadRoutes(r, data)
}

// LoadRoutes parses YAML route declarations and registers them on r.
// Handlers are written as "Controller@action"; middleware by registered name.
// The whole document is validated before anything is registered.
func LoadRoutes(r Registrar, data []byte) error {
	var f routesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %w", ErrRoutesFile, err)
	}
	if err := validateEntries(f.Routes, "routes"); err != nil {
		return err
	}
	registerEntries(r, f.Routes)
	return nil
}

func validateEntries(entries []routeEntry, at string) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s[%d]", at, i)
		if e.Prefix != "" || len(e.Routes) > 0 {
			if e.Method != "" || e.Handler != "" || e.Path != "" {
				return fmt.Errorf("%w: %s: a group cannot also declare method, path or handler", ErrRoutesFile, where)
			}
			if err := validateEntries(e.Routes, where+".routes"); err != nil {
				return err
			}
			continue
		}
		if e.Method == "" || e.Path == "" || e.Handler == "" {
			return fmt.Errorf("%w: %s: method, path and handler are required", ErrRoutesFile, where)
		}
		if _, _, ok := splitHandler(e.Handler); !ok {
			return fmt.Errorf("%w: %s: handler %q must look like Controller@action", ErrRoutesFile, where, e.Handler)
		}
		if _, err := CompilePattern(e.Path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRoutesFile, where, err)
		}
	}
	return nil
}

func registerEntries(r Registrar, entries []routeEntry) {
	for _, e := range entries {
		mw := make([]MiddlewareRef, 0, len(e.Middleware))
		for _, name := range e.Middleware {
			mw = append(mw, Named(name))
		}
		if e.Prefix != "" || len(e.Routes) > 0 {
			children := e.Routes
			r.With(mw...).Route(e.Prefix, func(g Registrar) {
				registerEntries(g, children)
			})
			continue
		}
		controller, action, _ := splitHandler(e.Handler)
		r.Handle(strings.ToUpper(e.Method), e.Path, ControllerRef(controller, action), mw...)
	}
}

func splitHandler(s string) (controller, action string, ok bool) {
	controller, action, ok = strings.Cut(s, "@")
	return controller, action, ok && controller != "" && action != ""
}
