package diagfmt

import (
	"fmt"
	"io"

	"hop/internal/diag"
	"hop/internal/source"
)

// Short writes one line per diagnostic in the interpreter's classic form:
//
//	[dòng 3:5] Lỗi ở chỗ 'x': Thiếu biểu thức.
//	[dòng 9:1] Lỗi ở cuối chương trình: Thiếu đóng ngoặc '}' sau khối lệnh.
//	[dòng 1:4] Lỗi: Kí tự không xác định.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, ShortLine(d, fs)); err != nil {
			return err
		}
	}
	return nil
}

// ShortLine renders a single diagnostic without the trailing newline.
func ShortLine(d diag.Diagnostic, fs *source.FileSet) string {
	start, _ := fs.Resolve(d.Primary)
	return fmt.Sprintf("[dòng %d:%d] %s%s: %s", start.Line, start.Col, d.Severity.Word(), where(d, fs), d.Message)
}

// where names the offending text. Lexical errors carry their own message
// instead of a lexeme, and host errors have no lexeme at all.
func where(d diag.Diagnostic, fs *source.FileSet) string {
	if d.Code.IsLexical() || d.Code.IsHost() {
		return ""
	}
	f := fs.Get(d.Primary.File)
	if d.Primary.Empty() && f != nil && int(d.Primary.Start) >= len(f.Content) {
		return " ở cuối chương trình"
	}
	return " ở chỗ '" + fs.Text(d.Primary) + "'"
}
