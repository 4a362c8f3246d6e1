package frontend

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// EmailText is the part of a raw message worth classifying
type EmailText struct {
	From    string
	Subject string
	Body    string
}

// Text joins the subject and body the way a user would paste them
func (e *EmailText) Text() string {
	if e.Subject == "" {
		return e.Body
	}
	return e.Subject + "\n\n" + e.Body
}

// ParseEmail reads an RFC 5322 message and keeps its text/plain content
func ParseEmail(r io.Reader) (*EmailText, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	body, err := extractText(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read email body: %w", err)
	}

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		subject = msg.Header.Get("Subject")
	}

	return &EmailText{
		From:    msg.Header.Get("From"),
		Subject: subject,
		Body:    strings.TrimSpace(body),
	}, nil
}

// decodeTransfer undoes the Content-Transfer-Encoding of a body. Unknown
// encodings such as 7bit, 8bit and binary are read as is.
func decodeTransfer(encoding string, body io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		return quotedprintable.NewReader(body)
	default:
		return body
	}
}

// extractText returns the decoded body unless it is multipart, in which case
// the text/plain parts are concatenated
func extractText(contentType, transferEncoding string, body io.Reader) (string, error) {
	body = decodeTransfer(transferEncoding, body)

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	mr := multipart.NewReader(body, params["boundary"])
	var text bytes.Buffer
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever was read before the broken part
			if text.Len() > 0 {
				return text.String(), nil
			}
			return "", err
		}

		partType := strings.ToLower(part.Header.Get("Content-Type"))
		switch {
		case strings.HasPrefix(partType, "multipart/"):
			nested, err := extractText(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"), part)
			if err != nil {
				continue
			}
			text.WriteString(nested)
		case partType == "" || strings.HasPrefix(partType, "text/plain"):
			// Part already strips quoted-printable and drops the header when it does
			raw, err := io.ReadAll(decodeTransfer(part.Header.Get("Content-Transfer-Encoding"), part))
			if err != nil {
				continue
			}
			text.Write(raw)
			text.WriteString("\n")
		}
		// Attachments and HTML alternatives are skipped
	}

	return text.String(), nil
}
