package wire

// Checksum computes the simple-protocol trailer byte: the one's complement
// of the sum of the function byte, the length byte and every data byte,
// taken mod 256.
func Checksum(fn byte, data []byte) byte {
	sum := uint(fn) + uint(len(data))
	for _, b := range data {
		sum += uint(b)
	}
	return byte(^sum)
}
