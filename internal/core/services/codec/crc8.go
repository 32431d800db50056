package codec

const (
	crcPoly = 0x07
	crcSeed = 0x00
)

// CRC8 computes CRC-8 (poly 0x07, seed 0x00, no reflection, no final XOR)
// bit by bit, MSB first.
func CRC8(data []byte) byte {
	crc := byte(crcSeed)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
