// Package uuid provides record identity strategies.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomGenerator mints a fresh UUIDv4 per record, so re-ingesting the
// same posting produces a new identity. This is the default strategy.
type RandomGenerator struct{}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewID returns a UUIDv4 string. The job key is ignored.
func (RandomGenerator) NewID(string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid4: %w", err)
	}
	return id.String(), nil
}

// NaturalKeyGenerator derives a stable UUIDv5 from the feed source name
// and the posting's requisition key, so re-ingesting the same posting
// updates the prior record instead of duplicating it. Postings without
// a key fall back to a random identity.
type NaturalKeyGenerator struct {
	source string
}

// NewNaturalKeyGenerator creates a NaturalKeyGenerator scoped to the
// named feed source.
func NewNaturalKeyGenerator(source string) *NaturalKeyGenerator {
	return &NaturalKeyGenerator{source: source}
}

// NewID returns a deterministic UUID for the job key, or a random one
// when the key is empty.
func (g *NaturalKeyGenerator) NewID(jobKey string) (string, error) {
	if jobKey == "" {
		return RandomGenerator{}.NewID("")
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(g.source+"/"+jobKey)).String(), nil
}
