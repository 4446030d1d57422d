package profile

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/tamarack-health/matchd/internal/domain"
)

// Hash field names for profile records. Sets are comma-joined to match the
// TAG separator in the index schema.
const (
	fieldFirstName       = "first_name"
	fieldMiddleName      = "middle_name"
	fieldLastName        = "last_name"
	fieldPronouns        = "pronouns"
	fieldGender          = "gender"
	fieldEthnicity       = "ethnicity"
	fieldSexuality       = "sexuality"
	fieldFaith           = "faith"
	fieldLanguages       = "languages"
	fieldAvailability    = "availability"
	fieldFormat          = "format"
	fieldInitialPrice    = "initial_price"
	fieldSubsequentPrice = "subsequent_price"
	fieldAreasOfFocus    = "areas_of_focus"
	fieldApproaches      = "approaches"
	fieldSummary         = "ai_summary"
	fieldBio             = "bio"
	fieldVector          = "vector"
)

// SearchReturnFields lists the hash fields the search repository fetches.
// The raw vector is not among them.
var SearchReturnFields = []string{
	fieldFirstName, fieldMiddleName, fieldLastName, fieldPronouns,
	fieldGender, fieldEthnicity, fieldSexuality, fieldFaith,
	fieldLanguages, fieldAvailability, fieldFormat,
	fieldInitialPrice, fieldSubsequentPrice,
	fieldAreasOfFocus, fieldApproaches, fieldSummary, fieldBio,
}

// buildHashFields converts a profile into a flat map[string]string for HSET.
func buildHashFields(rec *domain.CandidateRecord, vector []float32) map[string]string {
	m := map[string]string{
		fieldFirstName:       rec.FirstName,
		fieldMiddleName:      rec.MiddleName,
		fieldLastName:        rec.LastName,
		fieldPronouns:        rec.Pronouns,
		fieldGender:          string(rec.Gender),
		fieldEthnicity:       joinTags(domain.Strings(rec.Ethnicity)),
		fieldSexuality:       joinTags(domain.Strings(rec.Sexuality)),
		fieldFaith:           joinTags(domain.Strings(rec.Faith)),
		fieldLanguages:       joinTags(rec.Languages),
		fieldAvailability:    string(rec.Availability),
		fieldFormat:          joinTags(domain.Strings(rec.Format)),
		fieldInitialPrice:    strconv.FormatFloat(rec.InitialPrice, 'f', -1, 64),
		fieldSubsequentPrice: strconv.FormatFloat(rec.SubsequentPrice, 'f', -1, 64),
		fieldAreasOfFocus:    joinTags(rec.AreasOfFocus),
		fieldApproaches:      joinTags(rec.Approaches),
		fieldSummary:         rec.Summary,
		fieldBio:             rec.Bio,
	}
	if len(vector) > 0 {
		m[fieldVector] = vectorToBytes(vector)
	}
	return m
}

// RecordFromFields converts a flat hash map back into a CandidateRecord.
// Shared with the search repository, which reads the same hashes via FT.SEARCH.
func RecordFromFields(id string, m map[string]string) domain.CandidateRecord {
	rec := domain.CandidateRecord{
		ID:           id,
		FirstName:    m[fieldFirstName],
		MiddleName:   m[fieldMiddleName],
		LastName:     m[fieldLastName],
		Pronouns:     m[fieldPronouns],
		Gender:       domain.Gender(m[fieldGender]),
		Ethnicity:    domain.ParseEthnicitySet(splitTags(m[fieldEthnicity])),
		Sexuality:    domain.ParseSexualitySet(splitTags(m[fieldSexuality])),
		Faith:        domain.ParseFaithSet(splitTags(m[fieldFaith])),
		Languages:    splitTags(m[fieldLanguages]),
		Availability: domain.Availability(m[fieldAvailability]),
		Format:       domain.ParseFormatSet(splitTags(m[fieldFormat])),
		AreasOfFocus: splitTags(m[fieldAreasOfFocus]),
		Approaches:   splitTags(m[fieldApproaches]),
		Summary:      m[fieldSummary],
		Bio:          m[fieldBio],
	}
	if f, err := strconv.ParseFloat(m[fieldInitialPrice], 64); err == nil {
		rec.InitialPrice = f
	}
	if f, err := strconv.ParseFloat(m[fieldSubsequentPrice], 64); err == nil {
		rec.SubsequentPrice = f
	}
	return rec
}

func joinTags(vals []string) string {
	return strings.Join(vals, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
