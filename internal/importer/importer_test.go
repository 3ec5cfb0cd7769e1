package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Width,Height,Qty\nSubmit,140,40,2\nEmail,200,32,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Width;Height;Qty\nSubmit;140;40;2\nEmail;200;32;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWidth\tHeight\tQty\nSubmit\t140\t40\t2\nEmail\t200\t32\t1\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Width|Height|Qty\nSubmit|140|40|2\nEmail|200|32|1\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Width", "Height", "Quantity", "Kind", "Color"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3, Kind: 4, Color: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"TYPE", "Caption", "W", "H", "Count", "Colour"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 1, Width: 2, Height: 3, Quantity: 4, Kind: 0, Color: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Submit", "140", "40", "1"})

	if isHeader {
		t.Error("expected no header for numeric row")
	}
	if mapping.Width != 1 || mapping.Kind != 4 || mapping.Color != 5 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Qty,Kind,Color\nSubmit,140,40,1,button,#4caf50\nEmail,200,32,1,input,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(result.Requests))
	}

	r := result.Requests[0]
	if r.Label != "Submit" || r.Width != 140 || r.Height != 40 || r.Kind != model.KindButton {
		t.Errorf("unexpected first request: %+v", r)
	}
	if r.Color != "#4caf50" {
		t.Errorf("expected color #4caf50, got %q", r.Color)
	}
	if result.Requests[1].Kind != model.KindInput {
		t.Errorf("expected input kind, got %s", result.Requests[1].Kind)
	}
	if r.ID == "" || r.ID == result.Requests[1].ID {
		t.Error("each request needs its own ID")
	}
}

func TestImportCSVFromReader_QuantityExpands(t *testing.T) {
	data := "Label,Width,Height,Qty\nOK,80,30,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(result.Requests))
	}
	for i, want := range []string{"OK 1", "OK 2", "OK 3"} {
		if result.Requests[i].Label != want {
			t.Errorf("request %d: expected label %q, got %q", i, want, result.Requests[i].Label)
		}
	}
}

func TestImportCSVFromReader_QuantityOptional(t *testing.T) {
	data := "Label,Width,Height\nOK,80,30\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(result.Requests))
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Submit,140,40,2\nEmail,200,32,1,input\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(result.Requests))
	}
	if result.Requests[2].Kind != model.KindInput {
		t.Errorf("expected positional kind column, got %s", result.Requests[2].Kind)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Width;Height\nSubmit;140;40\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d (errors: %v)", len(result.Requests), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected an error for empty input")
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want string
	}{
		{"width", "A,abc,40,1", "Invalid width"},
		{"height", "A,100,,1", "Missing height"},
		{"quantity", "A,100,40,x", "Invalid quantity"},
		{"negative", "A,-100,40,1", "must be positive"},
		{"zero quantity", "A,100,40,0", "must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader("Label,Width,Height,Qty\n"+tc.row+"\n"), ',')
			if len(result.Requests) != 0 {
				t.Errorf("expected no requests, got %d", len(result.Requests))
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, result.Errors)
			}
			if !strings.HasPrefix(result.Errors[0], "Line 2") {
				t.Errorf("expected error to name line 2, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Width,Height\nGood,100,40\nBad,abc,40\n\nAlso good,120,40\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Requests) != 2 {
		t.Errorf("expected 2 requests, got %d", len(result.Requests))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Width,Height,Kind\n,100,40,input\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(result.Requests))
	}
	if result.Requests[0].Label != "Input 1" {
		t.Errorf("expected generated label 'Input 1', got %q", result.Requests[0].Label)
	}
}

func TestImportCSVFromReader_UnknownKind(t *testing.T) {
	data := "Label,Width,Height,Kind\nA,100,40,slider\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Requests) != 1 || result.Requests[0].Kind != model.KindButton {
		t.Fatalf("expected one button request, got %+v", result.Requests)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown widget kind 'slider'") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown kind warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Width,Qty\nA,100,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.csv")
	if err := os.WriteFile(path, []byte("Label;Width;Height\nSubmit;140;40\nCancel;140;40\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d (errors: %v)", len(result.Requests), result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

func writeExcel(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, val := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cellRef, val); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "widgets.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := writeExcel(t, [][]string{
		{"Name", "Type", "W", "H", "Qty"},
		{"Search", "input", "200", "32", "2"},
		{"Go", "button", "60", "32", "1"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(result.Requests))
	}
	if result.Requests[0].Label != "Search 1" || result.Requests[0].Kind != model.KindInput {
		t.Errorf("unexpected first request: %+v", result.Requests[0])
	}
	if result.Requests[2].Width != 60 {
		t.Errorf("expected width 60, got %f", result.Requests[2].Width)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
