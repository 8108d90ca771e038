package diagfmt

import (
	"encoding/json"
	"io"

	"hop/internal/diag"
	"hop/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Category string       `json:"category"`
	Text     string       `json:"text"` // classic one-line form
	Lexeme   string       `json:"lexeme,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// FileSummaryJSON counts the diagnostics of one script.
type FileSummaryJSON struct {
	File     string `json:"file"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON  `json:"diagnostics"`
	Count       int               `json:"count"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Dropped     int               `json:"dropped,omitempty"` // over the bag limit
	Files       []FileSummaryJSON `json:"files"`
}

// category names the code range: lexical, syntax, semantic, io or project.
func category(code diag.Code) string {
	switch id := int(code); {
	case id >= 1000 && id < 2000:
		return "lexical"
	case id >= 2000 && id < 3000:
		return "syntax"
	case id >= 3000 && id < 4000:
		return "semantic"
	case id >= 4000 && id < 5000:
		return "io"
	case id >= 5000 && id < 6000:
		return "project"
	}
	return "unknown"
}

// lexeme is the source text a script diagnostic points at, the same text
// the short form quotes.
func lexeme(d diag.Diagnostic, fs *source.FileSet) string {
	if d.Code.IsLexical() || d.Code.IsHost() || d.Primary.Empty() {
		return ""
	}
	return fs.Text(d.Primary)
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)

	// Форматируем путь согласно режиму
	path := displayPath(fs, f, pathMode)

	loc := LocationJSON{
		File:      path,
		StartByte: span.Start,
		EndByte:   span.End,
	}

	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}

	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	diagnostics := make([]DiagnosticJSON, 0, bag.Len())
	files := []FileSummaryJSON{}
	fileIndex := make(map[string]int)

	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := range maxItems {
		d := items[i]

		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Category: category(d.Code),
			Text:     ShortLine(d, fs),
			Lexeme:   lexeme(d, fs),
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}

		idx, seen := fileIndex[diagJSON.Location.File]
		if !seen {
			idx = len(files)
			fileIndex[diagJSON.Location.File] = idx
			files = append(files, FileSummaryJSON{File: diagJSON.Location.File})
		}
		switch d.Severity {
		case diag.SevError:
			files[idx].Errors++
		case diag.SevWarning:
			files[idx].Warnings++
		}

		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	output := DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Errors:      bag.ErrorCount(),
		Dropped:     bag.Dropped(),
		Files:       files,
	}
	for _, d := range items {
		if d.Severity == diag.SevWarning {
			output.Warnings++
		}
	}

	return output, nil
}

// JSON форматирует диагностики в JSON формат.
// Выводит массив диагностик с полной информацией о местоположении и заметках.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
