package domain

import (
	"fmt"
	"strings"
)

// FilterState is the per-session set of search constraints. A nil field means
// "no constraint"; a non-nil slice is a non-empty set of distinct enum values.
// The state is owned by the caller and resubmitted on every turn; the service
// holds nothing between requests.
type FilterState struct {
	Gender             *Gender       `json:"gender"`
	Sexuality          []Sexuality   `json:"sexuality"`
	Ethnicity          []Ethnicity   `json:"ethnicity"`
	Faith              []Faith       `json:"faith"`
	Format             []Format      `json:"format"`
	MaxPriceInitial    *float64      `json:"max_price_initial"`
	MaxPriceSubsequent *float64      `json:"max_price_subsequent"`
	Availability       *Availability `json:"availability"`
}

// IsZero reports whether no constraint is set.
func (f FilterState) IsZero() bool {
	return f.Gender == nil &&
		len(f.Sexuality) == 0 &&
		len(f.Ethnicity) == 0 &&
		len(f.Faith) == 0 &&
		len(f.Format) == 0 &&
		f.MaxPriceInitial == nil &&
		f.MaxPriceSubsequent == nil &&
		f.Availability == nil
}

// Clone returns a deep copy.
func (f FilterState) Clone() FilterState {
	out := f
	out.Gender = clonePtr(f.Gender)
	out.Sexuality = cloneSlice(f.Sexuality)
	out.Ethnicity = cloneSlice(f.Ethnicity)
	out.Faith = cloneSlice(f.Faith)
	out.Format = cloneSlice(f.Format)
	out.MaxPriceInitial = clonePtr(f.MaxPriceInitial)
	out.MaxPriceSubsequent = clonePtr(f.MaxPriceSubsequent)
	out.Availability = clonePtr(f.Availability)
	return out
}

// Normalize drops unknown enum values, dedupes sets, nils out empty sets and
// discards non-positive price ceilings. Unrecognized input degrades to
// "no constraint" instead of failing the request.
func (f FilterState) Normalize() FilterState {
	out := FilterState{}

	if f.Gender != nil {
		if g, ok := ParseGender(string(*f.Gender)); ok {
			out.Gender = &g
		}
	}
	out.Sexuality = parseSet(Strings(f.Sexuality), ParseSexuality)
	out.Ethnicity = parseSet(Strings(f.Ethnicity), ParseEthnicity)
	out.Faith = parseSet(Strings(f.Faith), ParseFaith)
	out.Format = parseSet(Strings(f.Format), ParseFormat)

	if f.MaxPriceInitial != nil && *f.MaxPriceInitial > 0 {
		out.MaxPriceInitial = clonePtr(f.MaxPriceInitial)
	}
	if f.MaxPriceSubsequent != nil && *f.MaxPriceSubsequent > 0 {
		out.MaxPriceSubsequent = clonePtr(f.MaxPriceSubsequent)
	}
	if f.Availability != nil {
		if a, ok := ParseAvailability(string(*f.Availability)); ok {
			out.Availability = &a
		}
	}
	return out
}

// Validate checks the FilterState invariants.
func (f FilterState) Validate() error {
	if f.Gender != nil {
		if _, ok := ParseGender(string(*f.Gender)); !ok {
			return fmt.Errorf("unknown gender %q", *f.Gender)
		}
	}
	if err := validateSet(f.Sexuality, "sexuality", ParseSexuality); err != nil {
		return err
	}
	if err := validateSet(f.Ethnicity, "ethnicity", ParseEthnicity); err != nil {
		return err
	}
	if err := validateSet(f.Faith, "faith", ParseFaith); err != nil {
		return err
	}
	if err := validateSet(f.Format, "format", ParseFormat); err != nil {
		return err
	}
	if f.MaxPriceInitial != nil && *f.MaxPriceInitial < 0 {
		return fmt.Errorf("max_price_initial must be non-negative, got %g", *f.MaxPriceInitial)
	}
	if f.MaxPriceSubsequent != nil && *f.MaxPriceSubsequent < 0 {
		return fmt.Errorf("max_price_subsequent must be non-negative, got %g", *f.MaxPriceSubsequent)
	}
	if f.Availability != nil {
		if _, ok := ParseAvailability(string(*f.Availability)); !ok {
			return fmt.Errorf("unknown availability %q", *f.Availability)
		}
	}
	return nil
}

// Summary renders the active constraints for error context and logs.
func (f FilterState) Summary() string {
	var parts []string
	if f.Gender != nil {
		parts = append(parts, "gender="+string(*f.Gender))
	}
	if len(f.Sexuality) > 0 {
		parts = append(parts, "sexuality="+joinSet(f.Sexuality))
	}
	if len(f.Ethnicity) > 0 {
		parts = append(parts, "ethnicity="+joinSet(f.Ethnicity))
	}
	if len(f.Faith) > 0 {
		parts = append(parts, "faith="+joinSet(f.Faith))
	}
	if len(f.Format) > 0 {
		parts = append(parts, "format="+joinSet(f.Format))
	}
	if f.MaxPriceInitial != nil {
		parts = append(parts, fmt.Sprintf("max_price_initial=%g", *f.MaxPriceInitial))
	}
	if f.MaxPriceSubsequent != nil {
		parts = append(parts, fmt.Sprintf("max_price_subsequent=%g", *f.MaxPriceSubsequent))
	}
	if f.Availability != nil {
		parts = append(parts, "availability="+string(*f.Availability))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func validateSet[T ~string](vals []T, name string, parse func(string) (T, bool)) error {
	if vals == nil {
		return nil
	}
	if len(vals) == 0 {
		return fmt.Errorf("%s set must be non-empty or null", name)
	}
	seen := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		if _, ok := parse(string(v)); !ok {
			return fmt.Errorf("unknown %s %q", name, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("duplicate %s %q", name, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func joinSet[T ~string](vals []T) string {
	return strings.Join(Strings(vals), ",")
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
