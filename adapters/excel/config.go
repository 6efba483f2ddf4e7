package excel

// Config holds configuration for spreadsheet and text uploads
type Config struct {
	// Sheet to read from workbooks; empty means the first sheet
	Sheet string `json:"sheet"`
	// MaxBytes caps how much of an upload is read
	MaxBytes int64 `json:"max_bytes"`
}

// DefaultConfig returns sensible defaults for upload processing
func DefaultConfig() Config {
	return Config{
		MaxBytes: 10 << 20,
	}
}
