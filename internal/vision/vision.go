package vision

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// DescribePrompt is the shared prompt used by all vision adapters.
const DescribePrompt = `If this person were a Pokemon, what would be the Description, Type, HP, Attack, Defense, and Speed of this Pokemon?
Respond with a JSON like this: {"description": "Obviously prefers hot places. When it rains, steam is said to spout from the tip of its tail.", "type": "Fire", "typeBackgroundColor": "#fd7d24", "hp": 100, "attack": 100, "defense": 100, "speed": 100}`

// ErrMissingCredential is returned when the API key environment variable is
// unset or empty at request time.
var ErrMissingCredential = errors.New("api credential not set")

type Analyzer interface {
	Describe(ctx context.Context, img Image) (*Description, error)
}

// Image is a base64-encoded photo ready to embed in a request body.
type Image struct {
	Base64    string
	MediaType string
}

// Description holds the model's reply. Raw is passed through untouched; it
// is expected, but not guaranteed, to be a JSON object.
type Description struct {
	Raw string
}

// LookupCredential reads an API key from the environment.
func LookupCredential(envVar string) (string, error) {
	key, ok := os.LookupEnv(envVar)
	if !ok || key == "" {
		return "", fmt.Errorf("%s: %w", envVar, ErrMissingCredential)
	}
	return key, nil
}
