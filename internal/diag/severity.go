package diag

// Severity defines the importance of a diagnostic. Order matters:
// a higher value is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String is the English label used by the pretty, JSON and SARIF formats.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Word is the label the interpreter prints in its own messages.
func (s Severity) Word() string {
	switch s {
	case SevError:
		return "Lỗi"
	case SevWarning:
		return "Cảnh báo"
	default:
		return "Ghi chú"
	}
}
