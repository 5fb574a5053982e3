package client

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// IsRemoteImage reports whether a graph payload is a URL to fetch rather
// than inline data.
func IsRemoteImage(payload string) bool {
	return strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://")
}

// DecodeImage extracts raw bytes and a file extension from a base64 data
// URI ("data:image/png;base64,..."). A bare base64 string is accepted and
// assumed to be PNG, which is what the backend's renderer emits.
func DecodeImage(payload string) ([]byte, string, error) {
	ext := "png"
	data := payload

	if strings.HasPrefix(payload, "data:") {
		meta, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		data = rest
		if mime, found := strings.CutPrefix(meta, "data:image/"); found {
			ext = strings.SplitN(mime, ";", 2)[0]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	return raw, ext, nil
}
