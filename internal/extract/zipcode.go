package extract

import (
	"regexp"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

var (
	anyLetter  = regexp.MustCompile(`[A-Za-z]`)
	leadingZip = regexp.MustCompile(`^(\d{5})`)
)

// resolveZipcode locates a US 5-digit postal code. The direct
// postal_code field wins when the key is present, even if unusable;
// otherwise the provider metadata path is consulted. Canadian and other
// alphanumeric codes resolve to nil, and a ZIP+4 suffix is discarded.
// The result stays a string so leading zeros survive.
func (e *Extractor) resolveZipcode(payload jobs.Document) *string {
	var zip string
	switch {
	case payload.Has("postal_code"):
		v, ok := payload.String("postal_code")
		if !ok {
			return nil
		}
		zip = v
	default:
		derived := payload.Path("meta_data", "googlejobs", "derivedInfo")
		locations, _ := derived.Slice("locations")
		if len(locations) == 0 {
			return nil
		}
		loc, ok := jobs.AsDocument(locations[0])
		if !ok {
			return nil
		}
		zip, _ = loc.Path("postalAddress").String("postalCode")
	}

	if zip == "" {
		return nil
	}
	if anyLetter.MatchString(zip) {
		return nil
	}
	m := leadingZip.FindStringSubmatch(zip)
	if m == nil {
		return nil
	}
	return &m[1]
}
