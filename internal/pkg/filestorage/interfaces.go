package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations. The registry
// stores only the returned reference string, never file content.
type FileStorage interface {
	// SaveFile saves a file and returns the reference under which it is reachable
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
