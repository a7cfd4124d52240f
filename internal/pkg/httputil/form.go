// Package httputil holds helpers for building multipart requests.
package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// FormFile is one file part of a multipart form
type FormFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// EncodeMultipart writes fields and files into a multipart body and returns
// the body together with its Content-Type header value.
func EncodeMultipart(fields map[string]string, files ...FormFile) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part for %s: %w", file.FileName, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write part for %s: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}

// CreateForm parses fields and files back into a *multipart.Form, the shape
// services receive from gin.
func CreateForm(fields map[string]string, files ...FormFile) (*multipart.Form, error) {
	body, contentType, err := EncodeMultipart(fields, files...)
	if err != nil {
		return nil, err
	}

	boundary := contentType[len("multipart/form-data; boundary="):]
	form, err := multipart.NewReader(body, boundary).ReadForm(32 << 20)
	if err != nil {
		return nil, fmt.Errorf("failed to read multipart form: %w", err)
	}

	for _, headers := range form.File {
		for _, fh := range headers {
			for _, file := range files {
				if file.FileName == fh.Filename {
					fh.Size = int64(len(file.Content))
				}
			}
		}
	}
	return form, nil
}
