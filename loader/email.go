package loader

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"strings"

	"github.com/poiesic/docsift/core"
)

// emailLoader parses RFC 5322 messages. Structured headers become metadata
// and the first text/plain part becomes the unit content.
type emailLoader struct{}

func (l *emailLoader) Load(path string) ([]core.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening email: %w", err)
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return nil, fmt.Errorf("parsing email: %w", err)
	}

	meta := core.Metadata{core.MetaDocumentType: "email"}
	for key, metaKey := range map[string]string{
		"Subject": core.MetaSubject,
		"From":    core.MetaFrom,
		"To":      core.MetaTo,
		"Date":    core.MetaDate,
	} {
		if v := strings.TrimSpace(msg.Header.Get(key)); v != "" {
			meta[metaKey] = v
		}
	}

	body, err := plainTextBody(msg)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}

	return []core.Unit{core.NewUnit(body, meta)}, nil
}

// plainTextBody returns the message body, selecting the first text/plain
// part of a multipart message.
func plainTextBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		data, err := io.ReadAll(msg.Body)
		return string(data), err
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable content type: treat the body as plain text.
		data, readErr := io.ReadAll(msg.Body)
		return string(data), readErr
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		data, err := io.ReadAll(msg.Body)
		return string(data), err
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("reading multipart body: %w", err)
		}
		partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if partType == "text/plain" || partType == "" {
			data, err := io.ReadAll(part)
			if err != nil {
				return "", fmt.Errorf("reading text part: %w", err)
			}
			return string(data), nil
		}
	}
}
