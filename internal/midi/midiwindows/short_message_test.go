package midiwindows

import (
	"bytes"
	"testing"
)

func TestUnpackShortMessage(t *testing.T) {
	tests := []struct {
		name   string
		packed uint32
		want   []byte
	}{
		{"control change", 0x7F42B0, []byte{176, 66, 127}},
		{"note on", 0x643C90, []byte{144, 60, 100}},
		{"program change", 0x0005C0, []byte{0xC0, 5}},
		{"channel pressure", 0x0040D3, []byte{0xD3, 0x40}},
		{"song position", 0x2010F2, []byte{0xF2, 0x10, 0x20}},
		{"song select", 0x0003F3, []byte{0xF3, 3}},
		{"timing clock", 0x0000F8, []byte{0xF8}},
		{"active sensing", 0x0000FE, []byte{0xFE}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unpackShortMessage(tt.packed); !bytes.Equal(got, tt.want) {
				t.Fatalf("unpackShortMessage(%#x) = %v, want %v", tt.packed, got, tt.want)
			}
		})
	}
}
