package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody is a multipart/form-data request body. The audio upload
// path uses it to ship the recording bytes plus option fields, such as
// a language hint, to the speech backend in one request. Set it as the
// Body of a Request and the client derives the boundary header.
type MultipartBody struct {
	// Fields are plain form values accompanying the upload.
	Fields map[string]string
	// Files are the binary parts, typically a single audio file.
	Files []FileField
}

// FileField is one uploaded file. ContentType should carry the real
// audio MIME type; speech backends use it to pick a decoder.
type FileField struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// encode renders the body and returns the reader together with the
// Content-Type header value carrying the boundary.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for _, f := range m.Files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// writeFilePart writes one file part. CreateFormFile would stamp
// application/octet-stream, so a declared MIME type gets its own part
// header.
func writeFilePart(w *multipart.Writer, f FileField) error {
	var part io.Writer
	var err error
	if f.ContentType == "" {
		part, err = w.CreateFormFile(f.FieldName, f.FileName)
	} else {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			`form-data; name="`+quoteEscaper.Replace(f.FieldName)+`"; filename="`+quoteEscaper.Replace(f.FileName)+`"`)
		h.Set("Content-Type", f.ContentType)
		part, err = w.CreatePart(h)
	}
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)
