package codec

import (
	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// fieldValue reads the UI-facing value of a field from an assessment.
func fieldValue(a *domain.Assessment, f Field) uint64 {
	switch f {
	case FieldScope:
		return uint64(a.Scope)
	case FieldDataType:
		return uint64(a.DataType)
	case FieldEase:
		return uint64(a.Ease)
	case FieldConfidentiality:
		return uint64(a.Confidentiality)
	case FieldIntegrity:
		return uint64(a.Integrity)
	case FieldAvailability:
		return uint64(a.Availability)
	case FieldAveraging:
		return uint64(a.Averaging)
	case FieldInference:
		return uint64(a.Inference)
	case FieldSingling:
		return boolBit(a.Singling)
	case FieldLinkageInternalToExternal:
		return boolBit(a.LinkageInternalToExternal)
	case FieldLinkageExternalToInternal:
		return boolBit(a.LinkageExternalToInternal)
	case FieldReidentification:
		return boolBit(a.Reidentification)
	case FieldPrivacyBudget:
		return uint64(a.PrivacyBudget)
	case FieldOverrideLikelihood:
		return uint64(a.OverrideLikelihood)
	case FieldOverrideImpact:
		return uint64(a.OverrideImpact)
	case FieldOverrideOverall:
		return uint64(a.OverrideOverall)
	case FieldPrevention:
		return uint64(a.Prevention)
	case FieldDetection:
		return uint64(a.Detection)
	case FieldResponse:
		return uint64(a.Response)
	}
	return 0
}

// setFieldValue writes a UI-facing value into an assessment.
func setFieldValue(a *domain.Assessment, f Field, v uint64) {
	u := uint8(v)
	switch f {
	case FieldScope:
		a.Scope = domain.Scope(u)
	case FieldDataType:
		a.DataType = domain.DataType(u)
	case FieldEase:
		a.Ease = u
	case FieldConfidentiality:
		a.Confidentiality = u
	case FieldIntegrity:
		a.Integrity = u
	case FieldAvailability:
		a.Availability = u
	case FieldAveraging:
		a.Averaging = u
	case FieldInference:
		a.Inference = u
	case FieldSingling:
		a.Singling = v != 0
	case FieldLinkageInternalToExternal:
		a.LinkageInternalToExternal = v != 0
	case FieldLinkageExternalToInternal:
		a.LinkageExternalToInternal = v != 0
	case FieldReidentification:
		a.Reidentification = v != 0
	case FieldPrivacyBudget:
		a.PrivacyBudget = domain.Budget(u)
	case FieldOverrideLikelihood:
		a.OverrideLikelihood = u
	case FieldOverrideImpact:
		a.OverrideImpact = u
	case FieldOverrideOverall:
		a.OverrideOverall = u
	case FieldPrevention:
		a.Prevention = domain.Control(u)
	case FieldDetection:
		a.Detection = domain.Control(u)
	case FieldResponse:
		a.Response = domain.Control(u)
	}
}

// pack places every field of a clamped assessment at its offset and serializes the
// bitfield little-endian into PayloadLen bytes.
func (l *Layout) pack(a domain.Assessment) []byte {
	var bits uint64
	for _, f := range l.Fields {
		v := fieldValue(&a, f.Field) - f.Base
		bits |= (v & fieldMask(f.Width)) << f.Offset
	}
	// reserved positions always travel as zero
	bits &^= l.reservedMask()

	payload := make([]byte, l.PayloadLen)
	for i := range payload {
		payload[i] = byte(bits >> (8 * i))
	}
	return payload
}

// unpack reverses pack. Reserved bits are ignored by the reader; the result is clamped
// so that values a field width can hold but its domain cannot never escape.
func (l *Layout) unpack(payload []byte) domain.Assessment {
	var bits uint64
	for i, b := range payload[:l.PayloadLen] {
		bits |= uint64(b) << (8 * i)
	}

	var a domain.Assessment
	for _, f := range l.Fields {
		v := (bits >> f.Offset) & fieldMask(f.Width)
		setFieldValue(&a, f.Field, v+f.Base)
	}
	return a.Clamp()
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
