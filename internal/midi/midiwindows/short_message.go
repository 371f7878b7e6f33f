package midiwindows

// shortMessageLength returns the byte count of a short MIDI message by status.
func shortMessageLength(status byte) int {
	switch status & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0: // Note Off, Note On, Poly Pressure, Control Change, Pitch Bend
		return 3
	case 0xC0, 0xD0: // Program Change, Channel Pressure
		return 2
	case 0xF0:
		switch status {
		case 0xF1, 0xF3: // MIDI Time Code, Song Select
			return 2
		case 0xF2: // Song Position Pointer
			return 3
		}
		return 1
	}
	// Not a status byte.
	return 3
}

// unpackShortMessage turns the packed dwParam1 of MIM_DATA into message bytes.
func unpackShortMessage(packed uint32) []byte {
	raw := [3]byte{
		byte(packed & 0xFF),
		byte((packed >> 8) & 0xFF),
		byte((packed >> 16) & 0xFF),
	}
	return append([]byte(nil), raw[:shortMessageLength(raw[0])]...)
}
