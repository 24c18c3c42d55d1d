package cachebust

import "strings"

// BustMethod selects how a fingerprint is embedded in an asset path.
type BustMethod int

const (
	// File prefixes the filename: /files/<hash>.styles.css
	File BustMethod = iota
	// Path adds a directory segment: /files/<hash>/styles.css
	Path
	// Query appends a query parameter: /files/styles.css?c=<hash>
	Query
)

var methodNames = [...]string{
	File:  "file",
	Path:  "path",
	Query: "query",
}

func (m BustMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// Valid reports whether m is one of File, Path or Query.
func (m BustMethod) Valid() bool {
	return m >= File && m <= Query
}

// ParseBustMethod parses a method name case-insensitively.
func ParseBustMethod(name string) (BustMethod, error) {
	for i, n := range methodNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return BustMethod(i), nil
		}
	}
	return 0, newError(ErrInvalidBustMethod, name, nil)
}

// Set parses name into m, so *BustMethod can back a command-line flag.
func (m *BustMethod) Set(name string) error {
	parsed, err := ParseBustMethod(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type names the flag value type.
func (m *BustMethod) Type() string {
	return "method"
}
