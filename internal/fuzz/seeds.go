package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// languageSeeds cover every construct the grammar accepts.
var languageSeeds = []string{
	"",
	"int main() { return 0; }\n",
	"int add(int a, int b) {\n  return a + b;\n}\n",
	"float half(float x) { return x / 2.0; }\n",
	"void f() { int x = 1; x = x * 3 - 2; x++; --x; }\n",
	"int g(int n) { { int n = 2; return n; } }\n",
	"int flip(int n) { return !n - -n; }\n",
	"char c(char x) { return x; }\nvoid v() { c(1); }\n",
	"int f(int a) { return a; }\nint g() { return f(1, 2); }\n",
	"void f() { 1; return; 2; }\n",
	"int f() { return 1.5; }\n",
	"int x = 3;\nint y = x + 1;\n",
	"int f( {}\n",
	"/* block */ int f() { // line\n return -1; }\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.nut файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".nut" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
