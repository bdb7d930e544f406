package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.nut", []byte("int f() {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.nut", []byte("void f() {}"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
	if got := string(fs.Get(id1).Content); got != "int f() {}" {
		t.Errorf("old version content changed: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("expected nil for unknown file id")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.nut", []byte("ab\ncde\n\nf"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline itself ends line 1
		{3, LineCol{Line: 2, Col: 1}},
		{5, LineCol{Line: 2, Col: 3}},
		{7, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 1}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.nut", []byte("first\nsecond\n\nlast"))
	f := fs.Get(id)

	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for line, text := range want {
		if got := f.GetLine(line); got != text {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, text)
		}
	}
}

func TestNormalizeBOMAndCRLF(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("int x;\r\nint y;\r\n")...)
	got, flags := Normalize(raw)
	if string(got) != "int x;\nint y;\n" {
		t.Fatalf("unexpected normalized content %q", got)
	}
	if !flags.Has(FileHadBOM|FileNormalizedCRLF) {
		t.Fatalf("expected BOM and CRLF flags, got %b", flags)
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "é" as 'e' + combining acute accent
	decomposed := []byte("cafe\u0301")
	got, flags := Normalize(decomposed)
	if string(got) != "caf\u00e9" {
		t.Fatalf("expected NFC form, got %q", got)
	}
	if !flags.Has(FileNormalizedNFC) || flags.Has(FileHadBOM) {
		t.Fatalf("expected NFC flag")
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.nut")
	if err := os.WriteFile(path, []byte("void main() {}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "void main() {}\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
	if got := f.FormatPath("relative", dir); got != "main.nut" {
		t.Errorf("relative path = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.nut")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 1}); got != a {
		t.Errorf("cross-file cover must keep the receiver, got %v", got)
	}
	if !a.Cover(b).Contains(a) {
		t.Errorf("cover must contain the receiver")
	}
}

func TestFilePosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("p.nut", []byte("int x;\n  int y;")))
	if got := f.Position(9); got != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("Position(9) = %+v", got)
	}
}
