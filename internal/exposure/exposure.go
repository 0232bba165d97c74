// Package exposure turns domain values into ordered output maps according to declared exposures.
//
// A Type holds named exposures and may inherit from a parent Type. Each exposure says where its
// value comes from (a field of the subject or a computed function), when it is included (always,
// If or Unless a predicate holds) and under which key it is written. An Entity binds a Type to one
// subject and produces a *Map that an encoder can render as JSON, XML or YAML.
//
//	article := reg.MustRegister("article", record, pagination.Settings{DefaultPerPage: 20})
//	_ = article.Expose([]string{"title"}, exposure.As("headline"))
//	_ = article.Expose([]string{"body"}, exposure.Unless(exposure.OptionSet("summary")))
//	out := article.Represent(a, nil).Map(exposure.Options{"summary": true})
package exposure

// Options are the key/value options visible to conditions and computed values.
type Options map[string]any

// Merge returns a new Options with other laid over o. Neither input is modified.
func (o Options) Merge(other Options) Options {
	out := make(Options, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Bool reports whether key is set to true.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

type (
	// SourceFunc computes an exposure's value from the subject.
	SourceFunc func(subject any, opts Options) any
	// Predicate decides whether an exposure is included.
	Predicate func(subject any, opts Options) bool
	// Formatter transforms a resolved value before it is nested or written.
	Formatter func(v any) any
)

// OptionSet is a Predicate that holds when the option key is true.
func OptionSet(key string) Predicate {
	return func(_ any, opts Options) bool { return opts.Bool(key) }
}

// Source resolves an exposure's raw value: FieldSource or ComputedSource.
type Source interface {
	resolve(subject any, name string, opts Options) (any, bool)
}

// FieldSource reads the attribute of the same name from the subject.
type FieldSource struct{}

func (FieldSource) resolve(subject any, name string, _ Options) (any, bool) {
	return lookupField(subject, name)
}

// ComputedSource calls a function instead of reading a field.
type ComputedSource struct{ Fn SourceFunc }

func (s ComputedSource) resolve(subject any, _ string, opts Options) (any, bool) {
	return s.Fn(subject, opts), true
}

// Condition gates an exposure: Always, IfCondition or UnlessCondition.
type Condition interface {
	met(subject any, opts Options) bool
}

type Always struct{}

func (Always) met(any, Options) bool { return true }

type IfCondition struct{ Pred Predicate }

func (c IfCondition) met(subject any, opts Options) bool { return c.Pred(subject, opts) }

type UnlessCondition struct{ Pred Predicate }

func (c UnlessCondition) met(subject any, opts Options) bool { return !c.Pred(subject, opts) }

// Exposure is one declared attribute of a Type.
type Exposure struct {
	name      string
	key       string
	source    Source
	condition Condition
	format    Formatter
	using     *Type
	options   Options
}

// Name is the attribute name the exposure was declared with.
func (e Exposure) Name() string { return e.name }

// Key is the output key, the name unless As was given.
func (e Exposure) Key() string { return e.key }

func (e Exposure) Source() Source { return e.source }

func (e Exposure) Condition() Condition { return e.condition }

// Using is the Type nested values are presented with, or nil.
func (e Exposure) Using() *Type { return e.using }

// Option customizes a declaration made with Type.Expose.
type Option func(*declaration)

type declaration struct {
	as         string
	compute    SourceFunc
	ifPred     Predicate
	unlessPred Predicate
	format     Formatter
	using      *Type
	options    Options
}

// As writes the value under key instead of the attribute name.
func As(key string) Option {
	return func(d *declaration) { d.as = key }
}

// Compute resolves the value with fn rather than a field lookup.
func Compute(fn SourceFunc) Option {
	return func(d *declaration) { d.compute = fn }
}

// If includes the exposure only when p holds.
func If(p Predicate) Option {
	return func(d *declaration) { d.ifPred = p }
}

// Unless includes the exposure only when p does not hold.
func Unless(p Predicate) Option {
	return func(d *declaration) { d.unlessPred = p }
}

// FormatWith transforms the resolved value.
func FormatWith(f Formatter) Option {
	return func(d *declaration) { d.format = f }
}

// Using presents the value, or each element of a sequence value, with t.
func Using(t *Type) Option {
	return func(d *declaration) { d.using = t }
}

// With attaches a declared option. Bound and runtime options override it.
func With(key string, v any) Option {
	return func(d *declaration) {
		if d.options == nil {
			d.options = Options{}
		}
		d.options[key] = v
	}
}

func (d declaration) validate(names []string) error {
	if len(names) == 0 {
		return ErrNoAttributes
	}
	for _, n := range names {
		if n == "" {
			return ErrNoAttributes
		}
	}
	if len(names) > 1 {
		if d.as != "" {
			return ErrMultiAttributeAs
		}
		if d.compute != nil {
			return ErrMultiAttributeBlock
		}
	}
	if d.compute != nil && d.format != nil {
		return ErrBlockWithFormatter
	}
	if d.ifPred != nil && d.unlessPred != nil {
		return ErrConditionConflict
	}
	return nil
}

func (d declaration) exposure(name string) Exposure {
	e := Exposure{
		name:      name,
		key:       name,
		source:    FieldSource{},
		condition: Always{},
		format:    d.format,
		using:     d.using,
		options:   d.options,
	}
	if d.as != "" {
		e.key = d.as
	}
	if d.compute != nil {
		e.source = ComputedSource{Fn: d.compute}
	}
	switch {
	case d.ifPred != nil:
		e.condition = IfCondition{Pred: d.ifPred}
	case d.unlessPred != nil:
		e.condition = UnlessCondition{Pred: d.unlessPred}
	}
	return e
}
