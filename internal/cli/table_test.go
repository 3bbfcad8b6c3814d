package cli

import (
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow([]string{"Alice", "30"})
	table.AddRow([]string{"Bob"})
	table.AddRow([]string{"Charlie", "25", "Extra"})

	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"CHECK", "RATIO", "RESULT"})
	table.AlignRight(1)
	table.AddRow([]string{"body", "15.32", "pass"})
	table.AddRow([]string{"primary-btn", "7.10", "pass"})

	want := "CHECK        RATIO  RESULT\n" +
		"-----------  -----  ------\n" +
		"body         15.32  pass\n" +
		"primary-btn   7.10  pass\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Expected empty string for empty table, got: %q", got)
	}

	got := NewTable([]string{"Column1", "Column2"}).Render()
	if got != "Column1  Column2\n-------  -------\n" {
		t.Errorf("Expected header and separator only, got: %q", got)
	}
}

func TestTableWideCharacters(t *testing.T) {
	table := NewTable([]string{"Name", "Symbol"})
	table.AddRow([]string{"Test", "→ →"})
	table.AddRow([]string{"Wide", "色彩"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	// "色彩" is four cells wide, so the Symbol column is six cells.
	if lines[1] != "----  ------" {
		t.Errorf("Separator = %q, want column widths measured in cells", lines[1])
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		input string
		width int
		right string
		left  string
	}{
		{"test", 6, "test  ", "  test"},
		{"hello", 5, "hello", "hello"},
		{"world", 3, "world", "world"},
		{"", 2, "  ", "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.right {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.right)
		}
		if got := padLeft(tt.input, tt.width); got != tt.left {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.left)
		}
	}
}
