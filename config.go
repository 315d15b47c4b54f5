package keyset

import "fmt"

// Config is the immutable, single-call record spec §3 describes: the fully
// resolved inputs to one paginate() invocation. Nothing in Config persists
// across calls.
type Config struct {
	fields    Fields
	after     *Cursor
	before    *Cursor
	limit     int
	limitMax  int
	total     bool
	valueFunc ValueFunc
	typeFunc  TypeFunc
}

// Option customizes a Config via the functional-options builder, in the
// style of the teacher's CursorPager `With...` chain.
type Option func(*rawOptions)

type rawOptions struct {
	fields    Fields
	after     string
	before    string
	limit     int
	limitSet  bool
	limitMax  int
	total     bool
	valueFunc ValueFunc
	typeFunc  TypeFunc
}

// WithFields sets the ordered field vector. Required: Paginate returns
// ErrMissingFields without it.
func WithFields(fields ...Field) Option {
	return func(o *rawOptions) { o.fields = fields }
}

// WithAfter sets the forward cursor.
func WithAfter(token string) Option {
	return func(o *rawOptions) { o.after = token }
}

// WithBefore sets the backward cursor.
func WithBefore(token string) Option {
	return func(o *rawOptions) { o.before = token }
}

// WithLimit sets the page size, later clamped to [MinLimit, limitMax].
func WithLimit(n int) Option {
	return func(o *rawOptions) {
		o.limit = n
		o.limitSet = true
	}
}

// WithLimitMax overrides the per-call cap applied to limit. Default DefaultLimitMax.
func WithLimitMax(n int) Option {
	return func(o *rawOptions) { o.limitMax = n }
}

// WithTotal requests an auxiliary count query (spec §4.7).
func WithTotal() Option {
	return func(o *rawOptions) { o.total = true }
}

// WithValueFunc overrides the default value extractor. Required for
// second-level joins the engine can't guess the path for.
func WithValueFunc(fn ValueFunc) Option {
	return func(o *rawOptions) { o.valueFunc = fn }
}

// WithTypeFunc overrides the default (GORM-schema-based) type reflection hook.
func WithTypeFunc(fn TypeFunc) Option {
	return func(o *rawOptions) { o.typeFunc = fn }
}

// buildConfig resolves Options against rootModel (a zero-value instance of
// the query's root entity, used for the default TypeFunc) into a Config.
func buildConfig(rootModel any, opts ...Option) (*Config, error) {
	raw := rawOptions{
		limit:     DefaultLimit,
		limitMax:  DefaultLimitMax,
		valueFunc: DefaultValueFunc,
	}
	for _, opt := range opts {
		opt(&raw)
	}

	if err := raw.fields.validate(); err != nil {
		return nil, err
	}

	if raw.typeFunc == nil {
		raw.typeFunc = DefaultTypeFunc(rootModel)
	}
	fields, err := resolveFieldTypes(raw.fields, raw.typeFunc)
	if err != nil {
		return nil, err
	}

	limit := raw.limit
	if !raw.limitSet {
		limit = DefaultLimit
	}
	limit = clampLimit(limit, raw.limitMax)

	after, err := DecodeCursor(raw.after, fields.types())
	if err != nil {
		return nil, err
	}
	before, err := DecodeCursor(raw.before, fields.types())
	if err != nil {
		return nil, err
	}

	return &Config{
		fields:    fields,
		after:     after,
		before:    before,
		limit:     limit,
		limitMax:  raw.limitMax,
		total:     raw.total,
		valueFunc: raw.valueFunc,
		typeFunc:  raw.typeFunc,
	}, nil
}

// resolveFieldTypes fills in any field's zero-value Type by calling typeFn,
// leaving explicitly-set types (via WithType) untouched.
func resolveFieldTypes(fields Fields, typeFn TypeFunc) (Fields, error) {
	out := make(Fields, len(fields))
	for i, f := range fields {
		if f.Type != "" {
			out[i] = f
			continue
		}
		tag, err := typeFn(nil, f.Ref)
		if err != nil {
			return nil, fmt.Errorf("resolving type for field %q: %w", f.Ref.String(), err)
		}
		f.Type = tag
		out[i] = f
	}
	return out, nil
}

// reversedByBeforeAlone reports whether the query mutator must invert
// ORDER BY: spec §4.4's "if before is provided alone" rule.
func (c *Config) reversedByBeforeAlone() bool {
	return !c.before.IsEmpty() && c.after.IsEmpty()
}

// effectiveFields returns the field vector ORDER BY is actually built from:
// reversed when reversedByBeforeAlone, unchanged otherwise.
func (c *Config) effectiveFields() Fields {
	if c.reversedByBeforeAlone() {
		return c.fields.reversed()
	}
	return c.fields
}
