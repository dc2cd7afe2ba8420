package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
)

// MultipartBody is a multipart/form-data request body. Pass it as the
// Body of a Request; the client encodes it and sets the boundary
// Content-Type header.
type MultipartBody struct {
	// Fields are plain form fields, like the overwrite flag on uploads.
	Fields map[string]string
	// Files are the file parts.
	Files []FileField
}

// FileField is one uploaded file part.
type FileField struct {
	// FieldName is the form field name, "image" for engine uploads.
	FieldName string
	// FileName is the name sent to the server.
	FileName string
	// Data is the file content. Reader is used when Data is nil.
	Data []byte
	// Reader streams the content for large files.
	Reader io.Reader
}

// encode builds the body and returns it with the boundary content type.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, "", err
		}
		if f.Data != nil {
			_, err = part.Write(f.Data)
		} else if f.Reader != nil {
			_, err = io.Copy(part, f.Reader)
		}
		if err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
