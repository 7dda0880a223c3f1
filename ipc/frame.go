// Package ipc implements the length-prefixed JSON transport used to talk to
// the omnirec service. Every message is a 4-byte little-endian length followed
// by that many bytes of compact JSON, with a 64 KiB ceiling on the body.
package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	picker "github.com/omnirec/picker"
)

// MaxFrameSize is the largest allowed message body. A larger declared length
// is a protocol violation and is rejected before the body is read.
const MaxFrameSize = 65536

// frameHeaderSize is the length prefix size in bytes.
const frameHeaderSize = 4

// EncodeFrame serializes a request to compact JSON and prepends the
// little-endian length prefix.
func EncodeFrame(req *picker.Request) ([]byte, error) {
	return encodeFrame(req)
}

// EncodeResponseFrame frames a response the same way; it is the server-side
// counterpart used by the stub service and by tests.
func EncodeResponseFrame(resp *picker.Response) ([]byte, error) {
	return encodeFrame(resp)
}

func encodeFrame(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	if len(body) > MaxFrameSize {
		return nil, fmt.Errorf("encode message: %w", ErrOversizedFrame)
	}
	frame := make([]byte, frameHeaderSize+len(body))
	binary.LittleEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[frameHeaderSize:], body)
	return frame, nil
}

// ReadBody reads one frame body from r: length prefix first, size ceiling
// enforced before the body is read. Used on the server side, where stall
// deadlines are not the client's concern.
func ReadBody(r io.Reader) ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint32(header)
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame declares %d bytes: %w", length, ErrOversizedFrame)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// DecodeResponse parses a message body into a response. It never fails:
// malformed JSON and unrecognized type tags are normalized into error
// responses so the caller has a single branch point. Missing fields take
// their zero values.
func DecodeResponse(body []byte) *picker.Response {
	var resp picker.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return &picker.Response{
			Type:    picker.TypeError,
			Message: "Failed to parse response: " + err.Error(),
		}
	}

	switch resp.Type {
	case picker.TypeSelection, picker.TypeNoSelection, picker.TypeError,
		picker.TypeTokenValid, picker.TypeTokenInvalid, picker.TypeTokenStored:
		return &resp
	case picker.TypeOK:
		// Older services answer store_token with a bare ok.
		resp.Type = picker.TypeTokenStored
		return &resp
	default:
		return &picker.Response{
			Type:    picker.TypeError,
			Message: "Unknown response type: " + resp.Type,
		}
	}
}
