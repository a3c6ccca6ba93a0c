package csvimport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "quoted fields with commas",
			line: `"Super Mario, Kart",Switch,NTSC-U,New,true,true,59.99,2021-06-01,65.00,"a, b"`,
			want: []string{"Super Mario, Kart", "Switch", "NTSC-U", "New", "true", "true", "59.99", "2021-06-01", "65.00", "a, b"},
		},
		{
			name: "escaped quotes",
			line: `"He said ""mint""",SNES`,
			want: []string{`He said "mint"`, "SNES"},
		},
		{
			name: "empty line is one empty field",
			line: "",
			want: []string{""},
		},
		{
			name: "only commas",
			line: ",,,",
			want: []string{"", "", "", ""},
		},
		{
			name: "unterminated quote consumes the rest",
			line: `Zelda,"NES, PAL`,
			want: []string{"Zelda", "NES, PAL"},
		},
		{
			name: "spaces are kept",
			line: " Metroid , NES ",
			want: []string{" Metroid ", " NES "},
		},
		{
			name: "empty quoted field",
			line: `"",NES`,
			want: []string{"", "NES"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestCell(t *testing.T) {
	cells := []string{"a", "b"}

	require.Equal(t, "a", cell(cells, 0))
	require.Equal(t, "", cell(cells, 2))
	require.Equal(t, "", cell(nil, 0))
}
