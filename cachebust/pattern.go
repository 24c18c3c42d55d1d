package cachebust

import (
	"fmt"
	"regexp"
	"strings"
)

// Named groups in generated patterns. Concatenating them yields the original
// web path.
const (
	DirGroup  = "dir"
	FileGroup = "file"
)

// GeneratePattern returns an anchored regular expression matching any path
// busted by the configured File or Path method. The hash token matches any
// digest of the configured algorithm, not just current ones.
//
// The Query method is not supported because the fingerprint lives outside
// the URL path. Algorithms with variable length digests are not supported
// either.
func (e *Engine) GeneratePattern() (string, error) {
	expr, err := e.buildPattern()
	if err != nil {
		return "", e.fail(err)
	}
	return expr, nil
}

// Pattern is GeneratePattern compiled.
func (e *Engine) Pattern() (*regexp.Regexp, error) {
	if e.patternErr != nil {
		return nil, e.fail(e.patternErr)
	}
	return e.pattern, nil
}

// Recover strips the fingerprint from a busted path and returns the
// original web path. It reports false when busted does not match the
// pattern or no pattern exists for the configuration.
//
// Matching is purely structural. An unbusted asset whose name starts with a
// hex token of digest length, such as /files/deadbeef.css, matches too.
// Use RecoverAsset when the result must name a real asset.
func (e *Engine) Recover(busted string) (string, bool) {
	if e.pattern == nil {
		return "", false
	}
	p, query, fragment := splitWebPath(busted)
	m := e.pattern.FindStringSubmatch(p)
	if m == nil {
		return "", false
	}
	dir := m[e.pattern.SubexpIndex(DirGroup)]
	file := m[e.pattern.SubexpIndex(FileGroup)]
	return dir + file + query + fragment, true
}

// RecoverAsset is Recover checked against the public directory. It reports
// false when busted already resolves to an asset, or when the recovered
// path does not.
func (e *Engine) RecoverAsset(busted string, opts ...CallOption) (string, bool) {
	o := collect(opts)
	if _, err := e.diskPath(busted, o); err == nil {
		return "", false
	}
	original, ok := e.Recover(busted)
	if !ok {
		return "", false
	}
	if _, err := e.diskPath(original, o); err != nil {
		return "", false
	}
	return original, true
}

func (e *Engine) buildPattern() (string, error) {
	var sep string
	switch e.cfg.bustMethod {
	case File:
		sep = `\.`
	case Path:
		sep = `/`
	case Query:
		return "", newError(ErrUnsupportedOperation, Query.String(), nil)
	default:
		return "", newError(ErrInvalidBustMethod, e.cfg.bustMethod.String(), nil)
	}

	length := e.cfg.algorithm.Length
	if length <= 0 {
		return "", newError(ErrUnsupportedOperation, e.cfg.algorithm.Name, nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `^(?P<%s>/(?:[^/]*/)*)`, DirGroup)
	if e.cfg.prefix != "" {
		fmt.Fprintf(&b, `(?:%s-)?`, regexp.QuoteMeta(e.cfg.prefix))
	}
	fmt.Fprintf(&b, `[0-9a-f]{%d}%s(?P<%s>[^/]+)$`, length, sep, FileGroup)
	return b.String(), nil
}
