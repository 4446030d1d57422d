package domain

// Opt is an optional update value with three states: absent (leave the
// previous value), explicit clear, or a replacement value. Follows the
// nil-means-unchanged idiom of partial document patches.
type Opt[T any] struct {
	present bool
	value   *T
}

// SetOpt creates a present Opt carrying a value.
func SetOpt[T any](v T) Opt[T] {
	return Opt[T]{present: true, value: &v}
}

// ClearOpt creates a present Opt that clears the field.
func ClearOpt[T any]() Opt[T] {
	return Opt[T]{present: true}
}

// Present reports whether the field was asserted at all.
func (o Opt[T]) Present() bool { return o.present }

// Value returns the carried value, or nil for absent/clear.
func (o Opt[T]) Value() *T { return o.value }

// Update is a partial change to a FilterState, produced by the filter
// extractor (value or absent) or built from form state (value or absent,
// with explicit clears when the form resets a field). Absent fields leave
// the previous state untouched across turns.
type Update struct {
	Gender             Opt[Gender]
	Sexuality          Opt[[]Sexuality]
	Ethnicity          Opt[[]Ethnicity]
	Faith              Opt[[]Faith]
	Format             Opt[[]Format]
	MaxPriceInitial    Opt[float64]
	MaxPriceSubsequent Opt[float64]
	Availability       Opt[Availability]

	// Reasoning is a free-text diagnostic from the extractor.
	Reasoning string
}

// IsZero reports whether the update asserts nothing.
func (u Update) IsZero() bool {
	return !u.Gender.Present() &&
		!u.Sexuality.Present() &&
		!u.Ethnicity.Present() &&
		!u.Faith.Present() &&
		!u.Format.Present() &&
		!u.MaxPriceInitial.Present() &&
		!u.MaxPriceSubsequent.Present() &&
		!u.Availability.Present()
}

// Merge combines a previous FilterState with an Update. For every field the
// update asserts (including explicit clears) the update wins; absent fields
// retain the previous value. Pure and deterministic.
func Merge(prev FilterState, u Update) FilterState {
	next := prev.Clone()

	if u.Gender.Present() {
		next.Gender = clonePtr(u.Gender.Value())
	}
	if u.Sexuality.Present() {
		next.Sexuality = derefSet(u.Sexuality.Value())
	}
	if u.Ethnicity.Present() {
		next.Ethnicity = derefSet(u.Ethnicity.Value())
	}
	if u.Faith.Present() {
		next.Faith = derefSet(u.Faith.Value())
	}
	if u.Format.Present() {
		next.Format = derefSet(u.Format.Value())
	}
	if u.MaxPriceInitial.Present() {
		next.MaxPriceInitial = clonePtr(u.MaxPriceInitial.Value())
	}
	if u.MaxPriceSubsequent.Present() {
		next.MaxPriceSubsequent = clonePtr(u.MaxPriceSubsequent.Value())
	}
	if u.Availability.Present() {
		next.Availability = clonePtr(u.Availability.Value())
	}
	return next
}

// UpdateFromState builds an Update asserting exactly the non-null fields of
// s. Used to give form-held filters precedence over extracted ones.
func UpdateFromState(s FilterState) Update {
	var u Update
	if s.Gender != nil {
		u.Gender = SetOpt(*s.Gender)
	}
	if len(s.Sexuality) > 0 {
		u.Sexuality = SetOpt(cloneSlice(s.Sexuality))
	}
	if len(s.Ethnicity) > 0 {
		u.Ethnicity = SetOpt(cloneSlice(s.Ethnicity))
	}
	if len(s.Faith) > 0 {
		u.Faith = SetOpt(cloneSlice(s.Faith))
	}
	if len(s.Format) > 0 {
		u.Format = SetOpt(cloneSlice(s.Format))
	}
	if s.MaxPriceInitial != nil {
		u.MaxPriceInitial = SetOpt(*s.MaxPriceInitial)
	}
	if s.MaxPriceSubsequent != nil {
		u.MaxPriceSubsequent = SetOpt(*s.MaxPriceSubsequent)
	}
	if s.Availability != nil {
		u.Availability = SetOpt(*s.Availability)
	}
	return u
}

func derefSet[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	return cloneSlice(*p)
}
