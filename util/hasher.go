package util

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"hash/fnv"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/taigrr/colorhash"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the algorithm used when none is configured.
const DefaultAlgorithm = "crc32"

// Algorithm is a named digest function. Digests are always rendered as
// lowercase hex.
type Algorithm struct {
	// Name is the identifier used in configuration, e.g. "sha256".
	Name string
	// Length is the digest length in hex characters, or 0 if the
	// algorithm produces variable length output.
	Length int
	// New returns a fresh hash.Hash. Exactly one of New and Sum is set.
	New func() hash.Hash
	// Sum computes the raw digest of data in one shot.
	Sum func(data []byte) []byte
}

// Digest hashes the concatenation of parts and returns the hex digest.
func (a Algorithm) Digest(parts ...[]byte) string {
	if a.New != nil {
		h := a.New()
		for _, p := range parts {
			h.Write(p)
		}
		return hex.EncodeToString(h.Sum(nil))
	}
	return hex.EncodeToString(a.Sum(slices.Concat(parts...)))
}

// DigestString is Digest over string parts.
func (a Algorithm) DigestString(parts ...string) string {
	bs := make([][]byte, len(parts))
	for i, p := range parts {
		bs[i] = []byte(p)
	}
	return a.Digest(bs...)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Algorithm{}
)

func init() {
	castagnoli := crc32.MakeTable(crc32.Castagnoli)
	for _, a := range []Algorithm{
		{Name: "adler32", Length: 8, New: func() hash.Hash { return adler32.New() }},
		{Name: "crc32", Length: 8, New: func() hash.Hash { return crc32.NewIEEE() }},
		{Name: "crc32c", Length: 8, New: func() hash.Hash { return crc32.New(castagnoli) }},
		{Name: "fnv132", Length: 8, New: func() hash.Hash { return fnv.New32() }},
		{Name: "fnv1a32", Length: 8, New: func() hash.Hash { return fnv.New32a() }},
		{Name: "fnv164", Length: 16, New: func() hash.Hash { return fnv.New64() }},
		{Name: "fnv1a64", Length: 16, New: func() hash.Hash { return fnv.New64a() }},
		{Name: "md4", Length: 32, New: md4.New},
		{Name: "md5", Length: 32, New: md5.New},
		{Name: "sha1", Length: 40, New: sha1.New},
		{Name: "sha224", Length: 56, New: sha256.New224},
		{Name: "sha256", Length: 64, New: sha256.New},
		{Name: "sha384", Length: 96, New: sha512.New384},
		{Name: "sha512", Length: 128, New: sha512.New},
		{Name: "sha512/256", Length: 64, New: sha512.New512_256},
		{Name: "sha3-224", Length: 56, New: func() hash.Hash { return sha3.New224() }},
		{Name: "sha3-256", Length: 64, New: func() hash.Hash { return sha3.New256() }},
		{Name: "sha3-384", Length: 96, New: func() hash.Hash { return sha3.New384() }},
		{Name: "sha3-512", Length: 128, New: func() hash.Hash { return sha3.New512() }},
		{Name: "ripemd160", Length: 40, New: ripemd160.New},
		{Name: "blake2b-256", Length: 64, New: func() hash.Hash { return mustKeyless(blake2b.New256(nil)) }},
		{Name: "blake2b-512", Length: 128, New: func() hash.Hash { return mustKeyless(blake2b.New512(nil)) }},
		{Name: "blake2s-256", Length: 64, New: func() hash.Hash { return mustKeyless(blake2s.New256(nil)) }},
		{Name: "blake3", Length: 64, New: func() hash.Hash { return blake3.New() }},
		{Name: "xxh64", Length: 16, New: func() hash.Hash { return xxhash.New() }},
		{Name: "colorhash", Length: 16, Sum: colorHashSum},
	} {
		registry[a.Name] = a
	}
}

// mustKeyless unwraps the blake2 constructors, which only fail on
// oversized keys.
func mustKeyless(h hash.Hash, err error) hash.Hash {
	if err != nil {
		panic(err)
	}
	return h
}

// colorHashSum widens colorhash's integer hash to a fixed 8 bytes so the
// digest always renders as 16 hex characters.
func colorHashSum(data []byte) []byte {
	v := uint64(colorhash.HashString(string(data)))
	return binary.BigEndian.AppendUint64(nil, v)
}

// LookupAlgorithm returns the registered algorithm with the given name.
func LookupAlgorithm(name string) (Algorithm, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	return a, ok
}

// Algorithms returns the sorted names of all registered algorithms.
func Algorithms() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterAlgorithm adds a custom algorithm to the registry. Names must be
// unique.
func RegisterAlgorithm(a Algorithm) error {
	if a.Name == "" || (a.New == nil) == (a.Sum == nil) || a.Length < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, a.Name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[a.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAlgorithm, a.Name)
	}
	registry[a.Name] = a
	return nil
}
