package persistence

import "hash/crc32"

// Checksums guard against accidental storage corruption, not tampering.
// CRC32 with the IEEE polynomial is hardware-accelerated on modern CPUs
// and plenty for that job.

// Checksum computes the CRC32-IEEE checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
