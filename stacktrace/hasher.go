package stacktrace

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes stack hashes: short fingerprints of the frames of an error
// that stay the same when only line numbers or filtered frames change.
type Hasher struct {
	filter Filter
}

// NewHasher returns a Hasher that only hashes frames accepted by filter. A nil
// filter accepts every frame.
func NewHasher(filter Filter) *Hasher {
	if filter == nil {
		filter = Any()
	}
	return &Hasher{filter: filter}
}

// Hash returns the 8 lowercase hex characters stack hash of the record's own
// frames. Causes and suppressed errors are not part of it. A nil record hashes
// like a record without frames.
func (h *Hasher) Hash(record *Record) string {
	return fmt.Sprintf("%08x", h.sum(record))
}

// Hashes returns the hash of each record of the cause chain, outermost first.
func (h *Hasher) Hashes(record *Record) []string {
	chain := record.causeChain()
	hashes := make([]string, len(chain))
	for index, cause := range chain {
		hashes[index] = h.Hash(cause)
	}
	return hashes
}

// HashError hashes err. It reports false when there is no error to hash.
func (h *Hasher) HashError(err error) (string, bool) {
	record := FromError(err)
	if record == nil {
		return "", false
	}
	return h.Hash(record), true
}

func (h *Hasher) sum(record *Record) uint32 {
	digest := xxhash.New()
	if record == nil {
		return fold(digest.Sum64())
	}
	for index := range record.Frames {
		frame := &record.Frames[index]
		if !h.filter.Accept(frame) {
			continue
		}
		_, _ = digest.WriteString(frame.Class)
		_, _ = digest.Write([]byte{0})
		_, _ = digest.WriteString(frame.Method)
		_, _ = digest.Write([]byte{'\n'})
	}
	return fold(digest.Sum64())
}

func fold(sum uint64) uint32 {
	return uint32(sum>>32) ^ uint32(sum)
}
