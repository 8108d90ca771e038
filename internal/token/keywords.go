package token

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var keywords = map[string]Kind{
	"và":    KwAnd,
	"hoặc":  KwOr,
	"không": KwNot,
	"dừng":  KwBreak,
	"hay":   KwElse,
	"thôi":  KwEnd,
	"xong":  KwEnd,
	"thoát": KwExit,
	"sai":   KwFalse,
	"đúng":  KwTrue,
	"rỗng":  KwNil,
	"cho":   KwFor,
	"hàm":   KwFun,
	"nếu":   KwIf,
	"thì":   KwThen,
	"in":    KwPrint,
	"trả":   KwReturn,
	"biến":  KwVar,
	"khi":   KwWhile,
	"bằng":  KwEqual,
	"là":    KwEqual,
	"có":    KwHave,
	"chứa":  KwHave,
	"của":   KwOf,
	"trong": KwOf,
	"hộp":   KwBox,
	"gọi":   KwCall,
	"với":   KwWith,
}

// Fold returns the canonical form of a name: NFC-composed and lower-cased.
// Keywords, globals, locals and box keys all compare by their folded form,
// so "Biến", "BIẾN" and a decomposed "biến" are the same word.
func Fold(s string) string {
	if isASCIILower(s) {
		return s
	}
	return strings.ToLower(norm.NFC.String(s))
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// LookupKeyword reports the keyword kind for ident, matching case-insensitively.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[Fold(ident)]
	return k, ok
}

// Spellings lists every source spelling of kind, sorted.
func Spellings(kind Kind) []string {
	var out []string
	for word, k := range keywords {
		if k == kind {
			out = append(out, word)
		}
	}
	slices.Sort(out)
	return out
}
