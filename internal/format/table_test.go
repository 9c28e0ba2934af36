package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Table, false},
		{"table", Table, false},
		{"Markdown", Markdown, false},
		{" csv ", CSV, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_Table(t *testing.T) {
	out := NewTable(Table).
		Header("ID", "Status").
		Row("linkedin", "Configured").
		Row("google", "Not configured").
		String()

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "linkedin")
	assert.Contains(t, out, "Not configured")
	assert.Contains(t, out, "┌")
}

func TestBuilder_Markdown(t *testing.T) {
	out := NewTable(Markdown).Header("A", "B").Row(1, 2).String()

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "| A | B |", lines[0])
	assert.Equal(t, "| 1 | 2 |", lines[2])
}

func TestBuilder_CSV(t *testing.T) {
	out := NewTable(CSV).Header("A", "B").Row("x", "y, z").String()

	assert.Equal(t, "A,B\nx,\"y, z\"", out)
}

func TestBuilder_CSVQuotesAndNumbers(t *testing.T) {
	out := NewTable(CSV).
		Header("Company", "Leads").
		Row(`Acme "West", Inc.`, 42).
		String()

	assert.Equal(t, "Company,Leads\n\"Acme \"\"West\"\", Inc.\",42", out)
}

func TestBuilder_Len(t *testing.T) {
	b := NewTable(Table).Header("A")
	assert.Equal(t, 0, b.Len())

	b.Row("x").Row("y")
	assert.Equal(t, 2, b.Len())
}

func TestBuilder_MaxWidth(t *testing.T) {
	out := NewTable(Table).MaxWidth(1, 5).Row("abcdefghij").String()

	assert.NotContains(t, out, "abcdefghij")
}
