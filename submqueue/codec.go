package submqueue

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Queue bodies are json, zstd-compressed and base64-encoded. Submission
// code dominates the payload and compresses well, which keeps messages
// under the SQS size limit.

func encodeBody(v any) (string, error) {
	jsonBody, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal queue message: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()

	compressed := encoder.EncodeAll(jsonBody, make([]byte, 0, len(jsonBody)))
	return base64.StdEncoding.EncodeToString(compressed), nil
}

func decodeBody(body string, v any) error {
	compressed, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return fmt.Errorf("failed to base64-decode queue message: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	jsonBody, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("failed to decompress queue message: %w", err)
	}

	if err := json.Unmarshal(jsonBody, v); err != nil {
		return fmt.Errorf("failed to unmarshal queue message: %w", err)
	}
	return nil
}
