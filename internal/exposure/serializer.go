package exposure

import (
	"encoding/json"
	"encoding/xml"
	"reflect"
)

// Serializable is implemented by values that render themselves into output values.
// Entity is the main implementation; a nested Serializable is rendered recursively.
type Serializable interface {
	Serialize(opts Options) any
}

// FieldAccessor is the direct-lookup capability of a subject. ok is false when the subject has
// no attribute of that name, which drops the exposure from the output.
type FieldAccessor interface {
	Field(name string) (any, bool)
}

// Sequencer is implemented by ordered containers that are not slices, such as pagination.Collection.
type Sequencer interface {
	Elements() []any
}

// Entity is a Type bound to one subject and a set of options.
type Entity struct {
	typ     *Type
	subject any
	options Options
}

func (e *Entity) Type() *Type { return e.typ }

func (e *Entity) Subject() any { return e.subject }

// Serialize implements Serializable. A nil subject yields nil.
func (e *Entity) Serialize(opts Options) any {
	m := e.Map(opts)
	if m == nil {
		return nil
	}
	return m
}

// Map renders the subject. runtime options are laid over the bound options, which are laid
// over each exposure's declared options. A nil subject yields a nil *Map.
func (e *Entity) Map(runtime Options) *Map {
	if e == nil || isNil(e.subject) {
		return nil
	}
	bound := e.options.Merge(runtime)
	out := NewMap()
	for _, x := range e.typ.resolved() {
		opts := x.options.Merge(bound)
		if !x.condition.met(e.subject, opts) {
			continue
		}
		v, ok := x.source.resolve(e.subject, x.name, opts)
		if !ok {
			continue
		}
		if x.format != nil {
			v = x.format(v)
		}
		out.Set(x.key, present(v, x.using, runtime))
	}
	return out
}

func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map(nil))
}

func (e *Entity) MarshalYAML() (any, error) {
	return e.Map(nil), nil
}

func (e *Entity) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return e.Map(nil).MarshalXML(enc, start)
}

// present nests v: Serializable values render themselves, and a sequence is rendered element by
// element only when every element is Serializable. Otherwise v is returned unchanged.
func present(v any, using *Type, opts Options) any {
	if using != nil {
		v = wrap(v, using)
	}
	if s, ok := v.(Serializable); ok {
		return s.Serialize(opts)
	}
	elems, ok := sequence(v)
	if !ok {
		return v
	}
	out := make([]any, len(elems))
	for i, el := range elems {
		s, ok := el.(Serializable)
		if !ok {
			return v
		}
		out[i] = s.Serialize(opts)
	}
	return out
}

func wrap(v any, t *Type) any {
	if _, ok := v.(Serializable); ok {
		return v
	}
	elems, ok := sequence(v)
	if !ok {
		return t.Represent(v, nil)
	}
	out := make([]any, len(elems))
	for i, el := range elems {
		if s, ok := el.(Serializable); ok {
			out[i] = s
			continue
		}
		out[i] = t.Represent(el, nil)
	}
	return out
}

// sequence flattens slices, arrays and Sequencers. Strings, byte slices and nil slices are not
// sequences.
func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		return s, s != nil
	case Sequencer:
		return s.Elements(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func lookupField(subject any, name string) (any, bool) {
	switch s := subject.(type) {
	case FieldAccessor:
		return s.Field(name)
	case map[string]any:
		v, ok := s[name]
		return v, ok
	case Options:
		v, ok := s[name]
		return v, ok
	}
	return nil, false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
