package driver

import (
	"hop/internal/diag"
	"hop/internal/lexer"
	"hop/internal/source"
	"hop/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path to EOF. Lexical errors are collected in
// Bag and also appear as Invalid tokens in the stream.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeFile lexes an already loaded file.
func TokenizeFile(fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
