package scope

import (
	"sort"

	"github.com/samber/lo"
)

type set map[string]struct{}

func (s set) add(name string) {
	s[name] = struct{}{}
}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s set) clone() set {
	ret := make(set, len(s))
	for k := range s {
		ret[k] = struct{}{}
	}
	return ret
}

func (s set) sorted() []string {
	ret := lo.Keys(s)
	sort.Strings(ret)
	return ret
}

// Info classifies the variable names used by one function body.
//
//   - global: names declared global here or in an enclosing function
//   - outer: names bound by enclosing (non top-level) function bodies
//   - local: names first introduced in this body
//   - upvalue: outer names this body, or a function nested in it, refers to
type Info struct {
	global  set
	outer   set
	local   set
	upvalue set
	root    bool
}

// NewRoot returns the scope of the top-level program. Top-level names live
// in the global table, so the root exposes no outer names to its children.
func NewRoot() *Info {
	return &Info{global: set{}, outer: set{}, local: set{}, upvalue: set{}, root: true}
}

// NewChild returns the scope of a function body defined inside parent.
func NewChild(parent *Info) *Info {
	outer := set{}
	if !parent.root {
		outer = parent.outer.clone()
		for name := range parent.local {
			outer.add(name)
		}
	}
	return &Info{global: parent.global.clone(), outer: outer, local: set{}, upvalue: set{}}
}

func (s *Info) MarkLocal(name string) {
	s.local.add(name)
}

func (s *Info) MarkGlobal(name string) {
	s.global.add(name)
}

// ReadVariable records a read of name. A name bound by an enclosing function
// becomes an upvalue; unknown names are left for the runtime to resolve
// against the global table.
func (s *Info) ReadVariable(name string) {
	switch {
	case s.global.has(name), s.local.has(name):
	case s.outer.has(name):
		s.upvalue.add(name)
	}
}

// WriteVariable records an assignment to name. Assigning a name that is not
// yet known introduces a new local.
func (s *Info) WriteVariable(name string) {
	switch {
	case s.global.has(name), s.local.has(name):
	case s.outer.has(name):
		s.upvalue.add(name)
	default:
		s.local.add(name)
	}
}

// EndScope merges the upvalues of a nested function into s. Names local to s
// are satisfied here and stop propagating.
func (s *Info) EndScope(child *Info) {
	for name := range child.upvalue {
		if !s.local.has(name) {
			s.upvalue.add(name)
		}
	}
}

func (s *Info) Globals() []string {
	return s.global.sorted()
}

func (s *Info) Locals() []string {
	return s.local.sorted()
}

func (s *Info) Upvalues() []string {
	return s.upvalue.sorted()
}
