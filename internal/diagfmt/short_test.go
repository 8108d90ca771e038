package diagfmt

import (
	"bytes"
	"testing"

	"hop/internal/diag"
	"hop/internal/source"
)

func TestShortLine(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("biến a = 1\nin a +\n@")
	fileID := fs.AddVirtual("s.hop", content)
	end := uint32(len(content))

	tests := []struct {
		name string
		d    diag.Diagnostic
		want string
	}{
		{
			name: "at lexeme",
			d:    diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 18, End: 19}, "Thiếu biểu thức."),
			want: "[dòng 2:6] Lỗi ở chỗ '+': Thiếu biểu thức.",
		},
		{
			name: "at end",
			d:    diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: end, End: end}, "Thiếu biểu thức."),
			want: "[dòng 3:2] Lỗi ở cuối chương trình: Thiếu biểu thức.",
		},
		{
			name: "lexical",
			d:    diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 20, End: 21}, "Kí tự không xác định."),
			want: "[dòng 3:1] Lỗi: Kí tự không xác định.",
		},
		{
			name: "host",
			d:    diag.New(diag.SevWarning, diag.IOCacheFailed, source.Span{File: fileID}, "Không dùng được bộ nhớ đệm."),
			want: "[dòng 1:1] Cảnh báo: Không dùng được bộ nhớ đệm.",
		},
		{
			name: "warning",
			d:    diag.New(diag.SevWarning, diag.SemaUnreachableAfterExit, source.Span{File: fileID, Start: 13, End: 15}, "Câu lệnh này sẽ không bao giờ được thực hiện."),
			want: "[dòng 2:1] Cảnh báo ở chỗ 'in': Câu lệnh này sẽ không bao giờ được thực hiện.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortLine(tt.d, fs); got != tt.want {
				t.Errorf("\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestShortWritesOneLineEach(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("s.hop", []byte("@ #"))
	diags := []diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Kí tự không xác định."),
		diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "Kí tự không xác định."),
	}
	var buf bytes.Buffer
	if err := Short(&buf, diags, fs); err != nil {
		t.Fatal(err)
	}
	want := "[dòng 1:1] Lỗi: Kí tự không xác định.\n[dòng 1:3] Lỗi: Kí tự không xác định.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
