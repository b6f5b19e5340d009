package hexcp

import (
	"slices"
	"testing"
)

func TestParseOne(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    rune
		wantErr bool
	}{
		{
			name:  "four digit",
			token: "0061",
			want:  0x61,
		},
		{
			name:  "lowercase hex accepted",
			token: "00e0",
			want:  0xE0,
		},
		{
			name:  "uppercase hex accepted",
			token: "00E0",
			want:  0xE0,
		},
		{
			name:  "unpadded",
			token: "61",
			want:  0x61,
		},
		{
			name:  "supplementary plane",
			token: "10000",
			want:  0x10000,
		},
		{
			name:  "maximum code point",
			token: "10FFFF",
			want:  0x10FFFF,
		},
		{
			name:    "above maximum",
			token:   "110000",
			wantErr: true,
		},
		{
			name:    "u plus prefix rejected",
			token:   "U+0061",
			wantErr: true,
		},
		{
			name:    "literal character rejected",
			token:   "z",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOne(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOne(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOne(%q) = U+%04X, want U+%04X", tt.token, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		want    []rune
		wantErr bool
	}{
		{
			name: "single",
			attr: "0061",
			want: []rune{0x61},
		},
		{
			name: "sequence",
			attr: "0061 0062 0063",
			want: []rune{0x61, 0x62, 0x63},
		},
		{
			name: "extra whitespace tolerated",
			attr: "  0061   0062 ",
			want: []rune{0x61, 0x62},
		},
		{
			name:    "empty attribute",
			attr:    "",
			wantErr: true,
		},
		{
			name:    "bad token in sequence",
			attr:    "0061 xyz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.attr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.attr, err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		cps  []rune
		want string
	}{
		{
			name: "pads to four digits",
			cps:  []rune{0x61},
			want: "0061",
		},
		{
			name: "sequence space separated",
			cps:  []rune{0x61, 0xE0},
			want: "0061 00E0",
		},
		{
			name: "supplementary plane keeps five digits",
			cps:  []rune{0x10000},
			want: "10000",
		},
		{
			name: "uppercase letters",
			cps:  []rune{0xE0},
			want: "00E0",
		},
		{
			name: "empty",
			cps:  nil,
			want: "",
		},
		{
			name: "surrogate survives formatting",
			cps:  []rune{0xD800},
			want: "D800",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.cps); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.cps, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	seqs := [][]rune{
		{0x61},
		{0x61, 0x62},
		{0x6B, 0x6F, 0x308},
		{0x10FFFF},
	}
	for _, cps := range seqs {
		got, err := Parse(Format(cps))
		if err != nil {
			t.Fatalf("Parse(Format(%v)) error = %v", cps, err)
		}
		if !slices.Equal(got, cps) {
			t.Errorf("round trip of %v = %v", cps, got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []rune
		want int
	}{
		{name: "equal", a: []rune{0x61}, b: []rune{0x61}, want: 0},
		{name: "lower value first", a: []rune{0x61}, b: []rune{0x62}, want: -1},
		{name: "higher value last", a: []rune{0x62}, b: []rune{0x61}, want: 1},
		{name: "prefix orders before extension", a: []rune{0x61}, b: []rune{0x61, 0x62}, want: -1},
		{name: "extension orders after prefix", a: []rune{0x61, 0x62}, b: []rune{0x61}, want: 1},
		{name: "position beats length", a: []rune{0x61, 0x7A}, b: []rune{0x62}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
