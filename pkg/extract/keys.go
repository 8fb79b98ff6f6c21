package extract

import (
	"strconv"

	"github.com/segmentio/fasthash/fnv1a"

	"github.com/northcutted/scanboard/pkg/types"
)

// fingerprint hashes the identifying fields of a finding. Fields are
// separated so that ("ab","c") and ("a","bc") hash differently.
func fingerprint(parts ...string) string {
	h := fnv1a.Init64
	for i := range parts {
		h = fnv1a.AddString64(h, parts[i])
		h = fnv1a.AddString64(h, "\x00")
	}
	return strconv.FormatUint(h, 16)
}

// keyspace hands out keys that are unique within one extraction call.
// Identical findings get an occurrence suffix in report order.
type keyspace struct {
	category types.Category
	seen     map[string]int
}

func newKeyspace(category types.Category) *keyspace {
	return &keyspace{category: category, seen: make(map[string]int)}
}

func (k *keyspace) next(parts ...string) string {
	base := string(k.category) + ":" + fingerprint(parts...)
	k.seen[base]++
	if n := k.seen[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}
