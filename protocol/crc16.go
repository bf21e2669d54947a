package protocol

// CRC16 is the CRC-16/MCRF4XX-style checksum used in frame trailers
// (init 0xFFFF, reflected, poly 0x8408), computed a byte at a time without a
// table to keep flash use small.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
