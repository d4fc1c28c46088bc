// Package netx holds small HTTP helpers shared by softhub clients.
package netx

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// FormField is one text field of a multipart form.
type FormField struct {
	Name  string
	Value string
}

// MultipartStream encodes fields followed by one file part without
// buffering the file. The returned body must be consumed or closed; the
// encoder stops with the reader's close error otherwise.
func MultipartStream(fields []FormField, fileField, filename string, file io.Reader) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, fields, fileField, filename, file))
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, fields []FormField, fileField, filename string, file io.Reader) error {
	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}

	fw, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	return mw.Close()
}

// AttachmentFilename extracts the filename offered by a Content-Disposition
// header, reduced to a plain base name. It returns "" when there is none
// or when the name is not usable as a local file name.
func AttachmentFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return SafeBaseName(params["filename"])
}

// SafeBaseName strips any directory part, Unix or Windows style, and
// returns "" for names that cannot be a local file name.
func SafeBaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return ""
	}
	return name
}
