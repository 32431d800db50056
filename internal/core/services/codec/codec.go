package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// Codec maps assessments to and from opaque share codes for one format generation.
// It is stateless and safe for concurrent use.
type Codec struct {
	layout *Layout
}

// New returns a codec for the current generation.
func New() *Codec {
	c, _ := ForVersion(CurrentVersion)
	return c
}

// ForVersion returns a codec bound to a registered generation.
func ForVersion(version byte) (*Codec, error) {
	l, ok := LayoutFor(version)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, version)
	}
	return &Codec{layout: l}, nil
}

// Version is the version byte this codec writes and accepts.
func (c *Codec) Version() byte { return c.layout.Version }

// EncodedLen is the length of every code this codec produces.
func (c *Codec) EncodedLen() int { return c.layout.EncodedLen() }

// Encode clamps the assessment and returns its Base64URL code. It never fails.
func (c *Codec) Encode(a domain.Assessment) string {
	payload := c.layout.pack(a.Clamp())

	wire := make([]byte, 0, c.layout.WireLen())
	wire = append(wire, c.layout.Version)
	wire = append(wire, payload...)
	wire = append(wire, CRC8(payload))

	return base64.RawURLEncoding.EncodeToString(wire)
}

// Decode parses a code. Length, version and checksum are all verified before any
// field is read; on error the returned assessment is the zero value.
func (c *Codec) Decode(code string) (domain.Assessment, error) {
	wire, err := decodeBase64URL(code)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("%w: %v", domain.ErrInvalidLength, err)
	}
	if len(wire) != c.layout.WireLen() {
		return domain.Assessment{}, fmt.Errorf("%w: got %d bytes, want %d", domain.ErrInvalidLength, len(wire), c.layout.WireLen())
	}

	if version := wire[0]; version != c.layout.Version {
		return domain.Assessment{}, fmt.Errorf("%w: got %d, want %d", domain.ErrUnsupportedVersion, version, c.layout.Version)
	}

	payload := wire[1 : 1+c.layout.PayloadLen]
	want := wire[len(wire)-1]
	if got := CRC8(payload); got != want {
		return domain.Assessment{}, fmt.Errorf("%w: computed %#02x, code carries %#02x", domain.ErrChecksumMismatch, got, want)
	}

	return c.layout.unpack(payload), nil
}

// decodeBase64URL accepts the URL-safe alphabet with or without padding. Unused
// trailing bits must be zero, so each code has exactly one spelling.
func decodeBase64URL(s string) ([]byte, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "=")
	return base64.RawURLEncoding.Strict().DecodeString(s)
}
