package fs

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// IdentityHash correlates one filesystem entry across successive snapshots.
// Zero is reserved and means "no identity".
type IdentityHash uint64

// NoIdentity is the reserved "absent / not found" value.
const NoIdentity IdentityHash = 0

// Valid reports whether h refers to an entry.
func (h IdentityHash) Valid() bool {
	return h != NoIdentity
}

func (h IdentityHash) String() string {
	return strconv.FormatUint(uint64(h), 16)
}

// Identity derives the identity token of item from its type, name and
// extension. Size and timestamps are left out so that an entry being written
// to keeps its identity across refreshes.
func Identity(item Item) IdentityHash {
	if item.Type == ItemInvalid {
		return NoIdentity
	}

	d := xxhash.New()
	_, _ = d.Write([]byte{byte(item.Type), 0})
	_, _ = d.WriteString(item.Name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(item.Extension)

	sum := IdentityHash(d.Sum64())
	if sum == NoIdentity {
		return 1
	}
	return sum
}

// WithIdentity returns item with Hash filled in.
func WithIdentity(item Item) Item {
	item.Hash = Identity(item)
	return item
}
