package batch

// Result represents the outcome of processing a single file.
type Result struct {
	// Path of the processed file.
	Path string

	// Size of the rewritten file in bytes.
	Size int64

	// Any error that occurred during processing.
	Error error
}
