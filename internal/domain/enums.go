package domain

// Enumerations for therapist search criteria. Values outside these sets are
// dropped during normalization rather than rejected, so a noisy extraction
// never fails a request.

// Gender is a therapist gender identity.
type Gender string

// Gender values.
const (
	GenderFemale    Gender = "female"
	GenderMale      Gender = "male"
	GenderNonBinary Gender = "non_binary"
)

// Sexuality is a therapist sexual orientation.
type Sexuality string

// Sexuality values.
const (
	SexualityStraight       Sexuality = "straight"
	SexualityGay            Sexuality = "gay"
	SexualityLesbian        Sexuality = "lesbian"
	SexualityBisexual       Sexuality = "bisexual"
	SexualityQueer          Sexuality = "queer"
	SexualityPansexual      Sexuality = "pansexual"
	SexualityAsexual        Sexuality = "asexual"
	SexualityQuestioning    Sexuality = "questioning"
	SexualityPreferNotToSay Sexuality = "prefer_not_to_say"
)

// Ethnicity is a therapist ethnicity.
type Ethnicity string

// Ethnicity values.
const (
	EthnicityAsian           Ethnicity = "asian"
	EthnicityBlack           Ethnicity = "black"
	EthnicityHispanic        Ethnicity = "hispanic"
	EthnicityIndigenous      Ethnicity = "indigenous"
	EthnicityMiddleEastern   Ethnicity = "middle_eastern"
	EthnicityPacificIslander Ethnicity = "pacific_islander"
	EthnicityWhite           Ethnicity = "white"
	EthnicityMultiracial     Ethnicity = "multiracial"
	EthnicityPreferNotToSay  Ethnicity = "prefer_not_to_say"
)

// Faith is a therapist faith or belief system.
type Faith string

// Faith values.
const (
	FaithChristian      Faith = "christian"
	FaithJewish         Faith = "jewish"
	FaithMuslim         Faith = "muslim"
	FaithHindu          Faith = "hindu"
	FaithBuddhist       Faith = "buddhist"
	FaithSikh           Faith = "sikh"
	FaithAtheist        Faith = "atheist"
	FaithAgnostic       Faith = "agnostic"
	FaithSpiritual      Faith = "spiritual"
	FaithOther          Faith = "other"
	FaithPreferNotToSay Faith = "prefer_not_to_say"
)

// Availability is how sessions are delivered.
type Availability string

// Availability values.
const (
	AvailabilityOnline   Availability = "online"
	AvailabilityInPerson Availability = "in_person"
	AvailabilityBoth     Availability = "both"
)

// Format is a therapy session format.
type Format string

// Format values.
const (
	FormatIndividual Format = "individual"
	FormatCouples    Format = "couples"
	FormatFamily     Format = "family"
)

var genderSet = map[Gender]struct{}{
	GenderFemale: {}, GenderMale: {}, GenderNonBinary: {},
}

var sexualitySet = map[Sexuality]struct{}{
	SexualityStraight: {}, SexualityGay: {}, SexualityLesbian: {},
	SexualityBisexual: {}, SexualityQueer: {}, SexualityPansexual: {},
	SexualityAsexual: {}, SexualityQuestioning: {}, SexualityPreferNotToSay: {},
}

var ethnicitySet = map[Ethnicity]struct{}{
	EthnicityAsian: {}, EthnicityBlack: {}, EthnicityHispanic: {},
	EthnicityIndigenous: {}, EthnicityMiddleEastern: {}, EthnicityPacificIslander: {},
	EthnicityWhite: {}, EthnicityMultiracial: {}, EthnicityPreferNotToSay: {},
}

var faithSet = map[Faith]struct{}{
	FaithChristian: {}, FaithJewish: {}, FaithMuslim: {}, FaithHindu: {},
	FaithBuddhist: {}, FaithSikh: {}, FaithAtheist: {}, FaithAgnostic: {},
	FaithSpiritual: {}, FaithOther: {}, FaithPreferNotToSay: {},
}

var availabilitySet = map[Availability]struct{}{
	AvailabilityOnline: {}, AvailabilityInPerson: {}, AvailabilityBoth: {},
}

var formatSet = map[Format]struct{}{
	FormatIndividual: {}, FormatCouples: {}, FormatFamily: {},
}

// ParseGender reports whether s is a known gender value.
func ParseGender(s string) (Gender, bool) {
	g := Gender(s)
	_, ok := genderSet[g]
	return g, ok
}

// ParseSexuality reports whether s is a known sexuality value.
func ParseSexuality(s string) (Sexuality, bool) {
	v := Sexuality(s)
	_, ok := sexualitySet[v]
	return v, ok
}

// ParseEthnicity reports whether s is a known ethnicity value.
func ParseEthnicity(s string) (Ethnicity, bool) {
	v := Ethnicity(s)
	_, ok := ethnicitySet[v]
	return v, ok
}

// ParseFaith reports whether s is a known faith value.
func ParseFaith(s string) (Faith, bool) {
	v := Faith(s)
	_, ok := faithSet[v]
	return v, ok
}

// ParseAvailability reports whether s is a known availability value.
func ParseAvailability(s string) (Availability, bool) {
	v := Availability(s)
	_, ok := availabilitySet[v]
	return v, ok
}

// ParseFormat reports whether s is a known format value.
func ParseFormat(s string) (Format, bool) {
	v := Format(s)
	_, ok := formatSet[v]
	return v, ok
}

// parseSet converts raw strings into a deduplicated set of enum values,
// dropping anything the parser does not recognize.
func parseSet[T comparable](raw []string, parse func(string) (T, bool)) []T {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(raw))
	out := make([]T, 0, len(raw))
	for _, s := range raw {
		v, ok := parse(s)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Strings converts a typed enum set to its raw string values. A nil set
// stays nil.
func Strings[T ~string](vals []T) []string {
	if vals == nil {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// ParseSexualitySet parses raw values into a sexuality set.
func ParseSexualitySet(raw []string) []Sexuality { return parseSet(raw, ParseSexuality) }

// ParseEthnicitySet parses raw values into an ethnicity set.
func ParseEthnicitySet(raw []string) []Ethnicity { return parseSet(raw, ParseEthnicity) }

// ParseFaithSet parses raw values into a faith set.
func ParseFaithSet(raw []string) []Faith { return parseSet(raw, ParseFaith) }

// ParseFormatSet parses raw values into a format set.
func ParseFormatSet(raw []string) []Format { return parseSet(raw, ParseFormat) }
