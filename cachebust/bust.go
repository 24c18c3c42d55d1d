package cachebust

import (
	"net/url"
	"slices"
	"strings"

	"github.com/dendrascience/cachebust/metrics"
)

// Bust rewrites webPath with the configured bust method. A disabled engine
// returns webPath unchanged without touching the filesystem.
func (e *Engine) Bust(webPath string, opts ...CallOption) (string, error) {
	return e.bust(e.cfg.bustMethod, webPath, collect(opts))
}

// QueryBust rewrites webPath with the Query method whatever method is
// configured.
func (e *Engine) QueryBust(webPath string, opts ...CallOption) (string, error) {
	return e.bust(Query, webPath, collect(opts))
}

func (e *Engine) bust(m BustMethod, webPath string, o callOptions) (string, error) {
	if !e.cfg.enabled {
		return webPath, nil
	}

	var (
		out string
		err error
	)
	switch m {
	case File:
		out, err = e.bustFile(webPath, o)
	case Path:
		out, err = e.bustPath(webPath, o)
	case Query:
		out, err = e.bustQuery(webPath, o)
	default:
		err = newError(ErrInvalidBustMethod, m.String(), nil)
	}
	if err != nil {
		return "", e.fail(err)
	}

	metrics.Busts.WithLabelValues(m.String()).Inc()
	e.log.Debug().
		Str("method", m.String()).
		Str("asset", webPath).
		Str("busted", out).
		Msg("busted asset")
	return out, nil
}

// bustFile turns /files/styles.css into /files/{hash}.styles.css.
func (e *Engine) bustFile(webPath string, o callOptions) (string, error) {
	p, query, fragment := splitWebPath(webPath)
	h, err := e.prefixedHash(p, o)
	if err != nil {
		return "", err
	}
	segs := segments(p)
	last := len(segs) - 1
	segs[last] = h + "." + segs[last]
	return "/" + strings.Join(segs, "/") + query + fragment, nil
}

// bustPath turns /files/styles.css into /files/{hash}/styles.css.
func (e *Engine) bustPath(webPath string, o callOptions) (string, error) {
	p, query, fragment := splitWebPath(webPath)
	h, err := e.prefixedHash(p, o)
	if err != nil {
		return "", err
	}
	segs := segments(p)
	segs = slices.Insert(segs, len(segs)-1, h)
	return "/" + strings.Join(segs, "/") + query + fragment, nil
}

// bustQuery turns /files/styles.css into /files/styles.css?c={hash}. The
// prefix is never applied.
func (e *Engine) bustQuery(webPath string, o callOptions) (string, error) {
	p, query, fragment := splitWebPath(webPath)
	h, err := e.hash(p, o)
	if err != nil {
		return "", err
	}
	sep := "?"
	switch {
	case query == "?":
		sep = ""
	case query != "":
		sep = "&"
	}
	return p + query + sep + url.QueryEscape(e.cfg.queryParam) + "=" + h + fragment, nil
}

// splitWebPath separates a web path from its "?query" and "#fragment"
// suffixes. The suffixes keep their leading delimiter.
func splitWebPath(webPath string) (p, query, fragment string) {
	p = webPath
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p, fragment = p[:i], p[i:]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p, query = p[:i], p[i:]
	}
	return p, query, fragment
}

// segments splits p on "/" after trimming surrounding slashes. The last
// element is the filename.
func segments(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
