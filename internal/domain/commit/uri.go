package commit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	URIScheme = "opencommit"
	uriHost   = "commit-detail"
)

var ErrInvalidURI = errors.New("invalid commit detail uri")

// BuildURI addresses the detail view for ref in workdir. Equal inputs always
// produce the same string so an open view can be found again.
func BuildURI(workdir, ref string) string {
	return fmt.Sprintf("%s://%s?workdir=%s&sha=%s",
		URIScheme,
		uriHost,
		url.QueryEscape(workdir),
		url.QueryEscape(ref),
	)
}

func ParseURI(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != URIScheme || u.Host != uriHost {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, raw)
	}
	query := u.Query()
	workdir := query.Get("workdir")
	ref := query.Get("sha")
	if workdir == "" || ref == "" {
		return "", "", fmt.Errorf("%w: missing workdir or sha: %s", ErrInvalidURI, raw)
	}
	return workdir, ref, nil
}
