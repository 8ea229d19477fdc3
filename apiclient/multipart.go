package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Multipart is a form-data request body, typically a file upload.
// It is encoded once when the request is built, so retries after a token
// refresh resend identical bytes.
type Multipart struct {
	fields []multipartField
	files  []multipartFile
}

type multipartField struct {
	name  string
	value string
}

type multipartFile struct {
	field    string
	filename string
	content  io.Reader
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) AddField(name, value string) *Multipart {
	m.fields = append(m.fields, multipartField{name: name, value: value})
	return m
}

// AddFile adds a file part. content is read when the request is built.
func (m *Multipart) AddFile(field, filename string, content io.Reader) *Multipart {
	m.files = append(m.files, multipartFile{field: field, filename: filename, content: content})
	return m
}

// encode returns the body and its Content-Type, which carries the boundary
func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", f.name, err)
		}
	}
	for _, f := range m.files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			return nil, "", fmt.Errorf("multipart file %s: %w", f.field, err)
		}
		if _, err = io.Copy(part, f.content); err != nil {
			return nil, "", fmt.Errorf("multipart file %s: %w", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
