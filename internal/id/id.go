package id

import (
	"crypto/rand"
	"time"
)

// ulidAlphabet is Crockford's Base32 (I, L, O, U excluded).
const ulidAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULID generates a ULID: 26 characters encoding a 48-bit millisecond
// timestamp followed by 80 bits of randomness. The timestamp prefix makes
// IDs time-sortable; the random tail makes rapid successive IDs
// collision-resistant, which is what default trace file names rely on.
func ULID() string {
	var b [16]byte
	ms := uint64(time.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		b[i] = byte(ms >> (40 - 8*i))
	}
	_, _ = rand.Read(b[6:])
	return encodeULID(b)
}

// encodeULID renders 128 bits as 26 Base32 characters. The 130-bit output
// space is left-padded with two zero bits.
func encodeULID(b [16]byte) string {
	out := make([]byte, 26)
	bitPos := -2
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			if bitPos >= 0 {
				v |= (b[bitPos/8] >> (7 - bitPos%8)) & 1
			}
			bitPos++
		}
		out[i] = ulidAlphabet[v]
	}
	return string(out)
}
