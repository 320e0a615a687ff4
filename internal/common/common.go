package common

// ToLower shifts ASCII 'A'..'Z' in p to lower case in place.
func ToLower(p []byte) {
	for i, c := range p {
		if c >= 'A' && c <= 'Z' {
			p[i] = c + ' '
		}
	}
}

// ToUpper shifts ASCII 'a'..'z' in p to upper case in place.
func ToUpper(p []byte) {
	for i, c := range p {
		if c >= 'a' && c <= 'z' {
			p[i] = c - ' '
		}
	}
}

// CompareN compares at most n bytes of a and b the way strncmp does: bytes
// are unsigned, a zero byte ends the string, and a slice that runs out is
// read as terminated. A negative n compares everything.
func CompareN(a, b []byte, n int) int {
	for i := 0; n < 0 || i < n; i++ {
		ca, cb := at(a, i), at(b, i)
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == 0 {
			return 0
		}
	}
	return 0
}

func at(p []byte, i int) byte {
	if i < len(p) {
		return p[i]
	}
	return 0
}

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [10]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// A zero count means b ended mid-varint.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 10 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
