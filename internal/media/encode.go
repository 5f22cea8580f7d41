package media

import (
	"encoding/base64"
	"fmt"
	"os"
)

// EncodeFile reads the file at path and returns its standard base64 encoding.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
