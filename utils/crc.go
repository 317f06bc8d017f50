package utils

import "hash/crc32"

func GenerateCrc(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// UpdateCrc continues a running checksum over the next chunk of a stream
func UpdateCrc(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, data)
}

func CheckCrc(crc uint32, data []byte) bool {
	return GenerateCrc(data) == crc
}
