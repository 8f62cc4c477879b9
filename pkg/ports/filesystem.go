package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary and
	// overwriting any existing content.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	// An already existing directory is not an error.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// RemoveAll deletes a path and any children it contains.
	RemoveAll(path string) error
}
