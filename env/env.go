// Package env holds the typed variable bindings a preprocessing pass
// evaluates its conditions against.
//
// An environment is built once per pass from the built-in table plus any
// caller-supplied overrides and is immutable afterwards, so independent
// passes can run concurrently, each with its own environment.
package env

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"sort"
	"strconv"
)

// Type is the inferred type of a binding or literal.
type Type int

const (
	Bool Type = iota
	Int
	Float
	String
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// Value is a raw binding together with its type, computed once from the
// string form: exactly "true" or "false" is a bool, then an int parse is
// tried, then a float parse, and anything left is a string.
type Value struct {
	Raw   string
	Type  Type
	Bool  bool
	Int   int64
	Float float64
}

// Classify derives the typed value of a raw string.
func Classify(raw string) Value {
	switch raw {
	case "true":
		return Value{Raw: raw, Type: Bool, Bool: true}
	case "false":
		return Value{Raw: raw, Type: Bool}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{Raw: raw, Type: Int, Int: n}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Raw: raw, Type: Float, Float: f}
	}
	return Value{Raw: raw, Type: String}
}

// Env is an immutable set of bindings for one preprocessing pass.
type Env struct {
	vars map[string]Value
}

// New builds an environment from built-in bindings and user overrides.
// Overrides shadow built-ins with the same name.
func New(builtins, overrides map[string]string) *Env {
	vars := make(map[string]Value, len(builtins)+len(overrides))
	for name, raw := range builtins {
		vars[name] = Classify(raw)
	}
	for name, raw := range overrides {
		vars[name] = Classify(raw)
	}
	return &Env{vars: vars}
}

// Lookup returns the typed value bound to name.
func (e *Env) Lookup(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Defined reports whether name is bound.
func (e *Env) Defined(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Binding is one entry of the debug listing.
type Binding struct {
	Name string
	Raw  string
	Type Type
}

// Dump returns every binding ordered by name. It backs the
// -list-conditionals diagnostic and plays no part in evaluation.
func (e *Env) Dump() []Binding {
	out := make([]Binding, 0, len(e.vars))
	for name, v := range e.vars {
		out = append(out, Binding{Name: name, Raw: v.Raw, Type: v.Type})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Compiler identity reported through the built-in table.
const (
	Version      = "4.0.18"
	OCamlVersion = "4.06.1+BS"
	OCamlPatch   = "BS"
)

// Builtins returns the standard variable table for the current host. All
// values are plain strings; their types derive from their form like any
// other binding.
func Builtins() map[string]string {
	osType := "Unix"
	if runtime.GOOS == "windows" {
		osType = "Win32"
	}
	return map[string]string{
		"BS":            "true",
		"BS_VERSION":    Version,
		"OCAML_VERSION": OCamlVersion,
		"OCAML_PATCH":   OCamlPatch,
		"OS_TYPE":       osType,
		"WORD_SIZE":     strconv.Itoa(bits.UintSize),
		"BIG_ENDIAN":    strconv.FormatBool(bigEndian()),
	}
}

func bigEndian() bool {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	return buf[0] == 0
}
