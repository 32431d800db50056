package codec

import (
	"fmt"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// Field identifies one packed assessment field.
type Field int

const (
	FieldScope Field = iota
	FieldDataType
	FieldEase
	FieldConfidentiality
	FieldIntegrity
	FieldAvailability
	FieldAveraging
	FieldInference
	FieldSingling
	FieldLinkageInternalToExternal
	FieldLinkageExternalToInternal
	FieldReidentification
	FieldPrivacyBudget
	FieldOverrideLikelihood
	FieldOverrideImpact
	FieldOverrideOverall
	FieldPrevention
	FieldDetection
	FieldResponse
)

var fieldNames = map[Field]string{
	FieldScope:                     "scope",
	FieldDataType:                  "dataType",
	FieldEase:                      "ease",
	FieldConfidentiality:           "confidentiality",
	FieldIntegrity:                 "integrity",
	FieldAvailability:              "availability",
	FieldAveraging:                 "avg",
	FieldInference:                 "inference",
	FieldSingling:                  "singling",
	FieldLinkageInternalToExternal: "linkage_ie",
	FieldLinkageExternalToInternal: "linkage_ei",
	FieldReidentification:          "reid",
	FieldPrivacyBudget:             "privacyBudget",
	FieldOverrideLikelihood:        "overrideL",
	FieldOverrideImpact:            "overrideI",
	FieldOverrideOverall:           "overrideO",
	FieldPrevention:                "prevention",
	FieldDetection:                 "detection",
	FieldResponse:                  "response",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// FieldSpec places a field at a fixed bit offset. Base is subtracted before packing
// so 1-based fields travel 0-based.
type FieldSpec struct {
	Field  Field
	Offset uint
	Width  uint
	Base   uint64
}

// Layout describes one format generation. Each version is self-contained: payload
// length, field placement and CRC scope are selected by the leading version byte.
type Layout struct {
	Version    byte
	PayloadLen int
	Fields     []FieldSpec
}

// WireLen is version + payload + CRC.
func (l *Layout) WireLen() int { return l.PayloadLen + 2 }

// EncodedLen is the length of the unpadded Base64URL text for this layout.
func (l *Layout) EncodedLen() int { return (l.WireLen()*8 + 5) / 6 }

// Generation 3 bit layout, bit 0 = LSB of payload byte 0.
const (
	V3Version    byte = 3
	v3PayloadLen      = 5

	offScope, widthScope           = 0, 2
	offDataType, widthDataType     = 2, 2
	offEase, widthEase             = 4, 3
	offConf, widthConf             = 7, 2
	offInteg, widthInteg           = 9, 2
	offAvail, widthAvail           = 11, 2
	offAvg, widthAvg               = 13, 2
	offInference, widthInference   = 15, 2
	offSingling, widthSingling     = 17, 1
	offLinkIE, widthLinkIE         = 18, 1
	offLinkEI, widthLinkEI         = 19, 1
	offReid, widthReid             = 20, 1
	offBudget, widthBudget         = 21, 3
	offOverrideL, widthOverrideL   = 24, 2
	offOverrideI, widthOverrideI   = 26, 2
	offOverrideO, widthOverrideO   = 28, 3
	offPrevention, widthPrevention = 31, 3
	offDetection, widthDetection   = 34, 3
	offResponse, widthResponse     = 37, 3
)

// Compile-time guards: the last field ends inside the payload, and the widest
// domains fit their widths.
var (
	_ [v3PayloadLen*8 - (offResponse + widthResponse)]struct{}
	_ [1<<widthOverrideO - 1 - domain.MaxOverallOverride]struct{}
	_ [1<<widthEase - 1 - (domain.MaxEase - domain.MinEase)]struct{}
	_ [1<<widthBudget - 1 - domain.MaxBudget]struct{}
	_ [1<<widthPrevention - 1 - domain.MaxControl]struct{}
)

var layoutV3 = &Layout{
	Version:    V3Version,
	PayloadLen: v3PayloadLen,
	Fields: []FieldSpec{
		{FieldScope, offScope, widthScope, domain.MinScope},
		{FieldDataType, offDataType, widthDataType, domain.MinDataType},
		{FieldEase, offEase, widthEase, domain.MinEase},
		{FieldConfidentiality, offConf, widthConf, 0},
		{FieldIntegrity, offInteg, widthInteg, 0},
		{FieldAvailability, offAvail, widthAvail, 0},
		{FieldAveraging, offAvg, widthAvg, 0},
		{FieldInference, offInference, widthInference, 0},
		{FieldSingling, offSingling, widthSingling, 0},
		{FieldLinkageInternalToExternal, offLinkIE, widthLinkIE, 0},
		{FieldLinkageExternalToInternal, offLinkEI, widthLinkEI, 0},
		{FieldReidentification, offReid, widthReid, 0},
		{FieldPrivacyBudget, offBudget, widthBudget, 0},
		{FieldOverrideLikelihood, offOverrideL, widthOverrideL, 0},
		{FieldOverrideImpact, offOverrideI, widthOverrideI, 0},
		{FieldOverrideOverall, offOverrideO, widthOverrideO, 0},
		{FieldPrevention, offPrevention, widthPrevention, 0},
		{FieldDetection, offDetection, widthDetection, 0},
		{FieldResponse, offResponse, widthResponse, 0},
	},
}

// layouts is indexed by version byte. Adding a generation means adding an entry,
// never touching an existing one.
var layouts = map[byte]*Layout{
	V3Version: layoutV3,
}

// CurrentVersion is the generation new codes are written with.
const CurrentVersion = V3Version

// LayoutFor returns the registered layout for a version.
func LayoutFor(version byte) (*Layout, bool) {
	l, ok := layouts[version]
	return l, ok
}

func init() {
	for v, l := range layouts {
		if err := l.validate(); err != nil {
			panic(fmt.Sprintf("codec: layout v%d: %v", v, err))
		}
	}
}

// validate rejects overlapping fields, fields past the payload, widths a uint64
// cannot hold, and duplicated fields.
func (l *Layout) validate() error {
	if l.PayloadLen <= 0 || l.PayloadLen > 8 {
		return fmt.Errorf("payload length %d out of range", l.PayloadLen)
	}
	var used uint64
	seen := make(map[Field]bool, len(l.Fields))
	for _, f := range l.Fields {
		if f.Width == 0 || f.Width > 8 {
			return fmt.Errorf("%s: width %d", f.Field, f.Width)
		}
		if f.Offset+f.Width > uint(l.PayloadLen*8) {
			return fmt.Errorf("%s: ends at bit %d past payload", f.Field, f.Offset+f.Width)
		}
		mask := fieldMask(f.Width) << f.Offset
		if used&mask != 0 {
			return fmt.Errorf("%s: overlaps another field", f.Field)
		}
		if seen[f.Field] {
			return fmt.Errorf("%s: placed twice", f.Field)
		}
		used |= mask
		seen[f.Field] = true
	}
	return nil
}

// reservedMask has a bit set for every payload position no field owns.
func (l *Layout) reservedMask() uint64 {
	all := fieldMask(uint(l.PayloadLen * 8))
	for _, f := range l.Fields {
		all &^= fieldMask(f.Width) << f.Offset
	}
	return all
}

func fieldMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}
