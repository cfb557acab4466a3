package hal

// rgb888FromBE expands one big-endian RGB565 pixel, as it travels on the SPI
// bus, to 8-bit channels.
func rgb888FromBE(hi, lo byte) (r, g, b uint8) {
	p := uint16(hi)<<8 | uint16(lo)
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// expandRGB565BE converts panel bytes into opaque RGBA bytes. dst must hold
// len(src)*2 bytes.
func expandRGB565BE(dst, src []byte) {
	for i := 0; i+1 < len(src) && i*2+3 < len(dst); i += 2 {
		r, g, b := rgb888FromBE(src[i], src[i+1])
		j := i * 2
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
