package logjack

import (
	"fmt"
	"reflect"
	"strings"
)

// Recursion and element caps keep inspection of large or cyclic values
// bounded.
const (
	maxInspectDepth = 10
	maxInspectElems = 10
)

// inspect renders a value with full structural detail: exported struct
// fields, map entries and slice elements each on their own line. Cycles
// are detected through visited pointers and addressable values.
func inspect(v any) string {
	if v == nil {
		return "<nil>"
	}
	w := &inspectWriter{visited: make(map[uintptr]bool)}
	w.value(v, emptyString, 0)
	return strings.TrimSuffix(w.b.String(), "\n")
}

type inspectWriter struct {
	b       strings.Builder
	visited map[uintptr]bool
}

func (w *inspectWriter) line(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *inspectWriter) value(v any, prefix string, depth int) {
	if depth > maxInspectDepth {
		w.line("%s: <max depth reached>", prefix)
		return
	}
	if v == nil {
		w.line("%s: <nil>", prefix)
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers, recording pointer targets so cyclic
	// structures terminate.
	var unwrapped uintptr
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				w.line("%s: <nil>", prefix)
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				w.line("%s: <nil>", prefix)
				return
			}
			ptr := val.Pointer()
			if w.visited[ptr] {
				w.line("%s: <circular reference>", prefix)
				return
			}
			w.visited[ptr] = true
			unwrapped = ptr
			val = val.Elem()
		default:
		}
		break
	}

	typ := val.Type()

	// Addressable non-pointer values reachable more than once by reference
	// count as cycles too. A value just unwrapped shares its pointer's
	// address and is already marked.
	if val.CanAddr() {
		addr := val.Addr().Pointer()
		if addr != unwrapped {
			if w.visited[addr] {
				w.line("%s: <circular reference>", prefix)
				return
			}
			w.visited[addr] = true
		}
	}

	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			w.line("Struct: %s", typ.Name())
		} else {
			w.line("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)
			if !fieldVal.CanInterface() {
				continue
			}
			fieldPrefix := field.Name
			if prefix != emptyString {
				fieldPrefix = prefix + "." + field.Name
			}
			w.value(fieldVal.Interface(), fieldPrefix, depth+1)
		}
		if prefix != emptyString {
			w.line("%s: }", prefix)
		}

	case reflect.Map:
		w.line("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			mapPrefix := fmt.Sprintf("%s[%v]", prefix, iter.Key().Interface())
			w.value(iter.Value().Interface(), mapPrefix, depth+1)
		}
		w.line("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		w.line("%s: %s (len: %d, cap: %d) {",
			prefix, typ.String(), val.Len(), val.Cap())
		for i := 0; i < val.Len() && i < maxInspectElems; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			elem := val.Index(i)
			if elem.CanInterface() {
				w.value(elem.Interface(), elemPrefix, depth+1)
			} else {
				w.value(reflect.New(elem.Type()).Elem().Interface(), elemPrefix, depth+1)
			}
		}
		if val.Len() > maxInspectElems {
			w.line("%s: ... (%d more elements)", prefix, val.Len()-maxInspectElems)
		}
		w.line("%s: }", prefix)

	default:
		if val.IsValid() && val.CanInterface() {
			w.line("%s: %v", prefix, val.Interface())
		} else {
			w.line("%s: %v", prefix, v)
		}
	}
}
