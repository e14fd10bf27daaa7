package storage

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir is where listing image files live. Image rows store the
// generated file name, not the absolute path.
var UploadDir string

func InitializeUploads() {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = filepath.Join("uploads", "properties")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Panic("could not create upload directory: " + err.Error())
	}
	UploadDir = dir
}

// SaveUpload writes one multipart file under UploadDir with a generated
// unique name and returns that name. Names are re-rolled on collision
// with an existing file.
func SaveUpload(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	var name string
	for {
		name = uuid.New().String() + ext
		if !FileExists(name) {
			break
		}
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// RemoveFile deletes a stored image file. A file that is already gone
// counts as deleted.
func RemoveFile(name string) error {
	err := os.Remove(filepath.Join(UploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(UploadDir, name))
	return err == nil
}
