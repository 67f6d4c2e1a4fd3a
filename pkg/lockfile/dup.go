package lockfile

import "fmt"

// SpecifierPolicy decides what to report for a pnpm or Yarn entry whose key
// holds a dependency specifier and no resolved version can be found.
type SpecifierPolicy int

const (
	// KeepSpecifier reports the specifier as the version.
	KeepSpecifier SpecifierPolicy = iota
	// RequireResolved drops the entry.
	RequireResolved
)

// ParseSpecifierPolicy parses "keep" or "require-resolved". The empty
// string means KeepSpecifier.
func ParseSpecifierPolicy(s string) (SpecifierPolicy, error) {
	switch s {
	case "", "keep":
		return KeepSpecifier, nil
	case "require-resolved":
		return RequireResolved, nil
	}
	return KeepSpecifier, fmt.Errorf("unknown specifier policy %q (want keep or require-resolved)", s)
}

func (p SpecifierPolicy) String() string {
	if p == RequireResolved {
		return "require-resolved"
	}
	return "keep"
}

func (p SpecifierPolicy) unresolved(name, specifier string) (Record, bool) {
	if p == RequireResolved {
		return Record{}, false
	}
	return Record{Name: name, Version: specifier}, true
}

// LenientParser parses object-form text that may contain comments or
// trailing commas.
type LenientParser func(data []byte) (*Object, error)

type options struct {
	policy  SpecifierPolicy
	lenient LenientParser
}

// Option configures FindDuplicates.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{policy: KeepSpecifier, lenient: ParseLenient}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSpecifierPolicy sets how unresolved specifiers are reported.
func WithSpecifierPolicy(p SpecifierPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLenientParser replaces ParseLenient for text that starts with "{".
func WithLenientParser(parse LenientParser) Option {
	return func(o *options) {
		if parse != nil {
			o.lenient = parse
		}
	}
}

// FindDuplicates returns the packages that in resolves to more than one
// version. Entries that cannot be decoded are skipped.
func FindDuplicates(in Input, opts ...Option) (Report, error) {
	if in.kind != KindObject && in.kind != KindText {
		return nil, &InvalidInputKindError{Type: "<nil>"}
	}
	o := newOptions(opts)

	acc := newAccumulator()
	extract(in, o, acc.add)
	return acc.report(), nil
}

// FindDuplicatesIn is FindDuplicates for a dynamically typed value, such as
// the result of decoding JSON into an interface.
func FindDuplicatesIn(v any, opts ...Option) (Report, error) {
	in, err := InputOf(v)
	if err != nil {
		return nil, err
	}
	return FindDuplicates(in, opts...)
}

// Records returns every record in, in scan order, without aggregating them.
func Records(in Input, opts ...Option) []Record {
	o := newOptions(opts)
	var out []Record
	extract(in, o, func(rec Record) { out = append(out, rec) })
	return out
}

func extract(in Input, o options, emit func(Record)) {
	switch format := Classify(in); format {
	case FormatPnpmText:
		scanPnpm(in.text, o.policy, emit)
	case FormatYarnText:
		scanYarn(in.text, emit)
	case FormatObjectText:
		obj, err := o.lenient([]byte(in.text))
		if err != nil || obj == nil {
			return
		}
		extract(ObjectInput(obj), o, emit)
	case FormatNpm, FormatBun, FormatComposite, FormatPackagesTable:
		scanObject(format, Table(in.object), o.policy, emit)
	}
}
