package keyset

// RawOptions is intended for API payloads. For proper code generation,
// inline it:
//
//	type ListOrdersRequest struct {
//	    Paging keyset.RawOptions `json:",inline"`
//	}
type RawOptions struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// After - opaque forward cursor obtained from a previous page's metadata.
	After string `json:"after,omitempty"`
	// Before - opaque backward cursor obtained from a previous page's metadata.
	Before string `json:"before,omitempty"`
	// Total - if true, also compute the total row count.
	Total bool `json:"total,omitempty"`
}

// Options converts RawOptions into the Option list Paginate expects,
// appending WithFields(fields...) and only emitting WithLimit when Limit
// was actually supplied (so the caller's zero value doesn't clobber
// DefaultLimit).
func (r RawOptions) Options(fields ...Field) []Option {
	opts := make([]Option, 0, 5)
	opts = append(opts, WithFields(fields...))

	if r.Limit != 0 {
		opts = append(opts, WithLimit(r.Limit))
	}
	if r.After != "" {
		opts = append(opts, WithAfter(r.After))
	}
	if r.Before != "" {
		opts = append(opts, WithBefore(r.Before))
	}
	if r.Total {
		opts = append(opts, WithTotal())
	}

	return opts
}
