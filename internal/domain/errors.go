package domain

import "fmt"

// TransportError means no response was received for a request.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means the photo list envelope could not be decoded.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ImageDecodeError means bytes were received but are not a decodable image.
type ImageDecodeError struct {
	PhotoID string
	Size    int
	Err     error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image decode error: photo %s (%d bytes): %v", e.PhotoID, e.Size, e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}
