package codec

import (
	"strings"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

const refSeparator = "-"

// Share wraps a code with its finding reference as "<ref>-<code>". An empty or
// fully sanitized-away reference yields the bare code.
func (c *Codec) Share(findingRef, code string) string {
	ref := domain.SanitizeFindingRef(findingRef)
	if ref == "" {
		return code
	}
	return ref + refSeparator + code
}

// ParseShared splits a shared string into reference and code. Base64 padding on
// the code is dropped.
//
// '-' is part of the Base64URL alphabet, so the separator is the '-' sitting
// right before a full-length code. Strings that are exactly one code long are
// bare codes. Anything else falls back to the last '-'; such input never decodes,
// but the caller still gets the reference it typed.
func (c *Codec) ParseShared(text string) (findingRef, code string) {
	text = strings.TrimRight(strings.TrimSpace(text), "=")
	n := c.layout.EncodedLen()

	switch {
	case len(text) <= n:
		return "", text
	case text[len(text)-n-1] == refSeparator[0]:
		return domain.SanitizeFindingRef(text[:len(text)-n-1]), text[len(text)-n:]
	}

	i := strings.LastIndex(text, refSeparator)
	if i < 0 {
		return "", text
	}
	return domain.SanitizeFindingRef(text[:i]), text[i+1:]
}

// DecodeShared parses a shared string and decodes its code.
func (c *Codec) DecodeShared(text string) (string, domain.Assessment, error) {
	ref, code := c.ParseShared(text)
	a, err := c.Decode(code)
	if err != nil {
		return "", domain.Assessment{}, err
	}
	return ref, a, nil
}
