package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Finger", "Penalty", "Share"}
	rows := [][]string{
		{"Left pinky", "97", "9.70%"},
		{"Right thumb", "3", "0.30%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Finger       Penalty  Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Left pinky        97  9.70%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Right thumb        3  0.30%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Раскладка", "N"}, [][]string{{"漢字", "1"}}, map[int]bool{1: true})
	if lines[1] != "漢字       1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if formatTable(nil, nil, nil) != nil {
		t.Fatalf("expected nil for empty table")
	}
}
