package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// languageSeeds cover every statement form so the fuzzer starts from
// inputs that get past the first token.
var languageSeeds = []string{
	"",
	"in 1 + 2 * 3",
	"biến x = 'a'\nx = x + 1\nin x",
	"hàm f(a, b) { trả a + b }\nin f(1, 2)",
	"hàm gt(n)\n  nếu n <= 1 thì trả 1\n  trả n * hàm(n - 1)\nxong",
	"khi đúng thì\n  dừng\nxong",
	"nếu 1 < 2 thì in 'a' hay nếu sai thì in 'b' hay in 'c' xong",
	"biến h = hộp có 1, 2\nh có 'k' là 3\nin 'k' của h\nin h[0]\nin h.độdài",
	"gọi in với 1",
	"{ biến a = 1 { biến b = a } }",
	"in rỗng hoặc không đúng và 1",
	"thoát",
	"in \"chưa đóng",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".hop" {
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
