package questions

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// embeddedBank is the version-controlled question bank shipped with the
// binary.
//
//go:embed data/soal.json
var embeddedBank []byte

// Source retrieves the full, ordered question list.
type Source interface {
	Fetch(ctx context.Context) ([]Question, error)
}

// Bank is a validated, immutable question list.
type Bank struct {
	origin    string
	questions []Question
	encoded   []byte
}

var _ Source = (*Bank)(nil)

// DefaultBank returns the bank embedded in the binary.
func DefaultBank() (*Bank, error) {
	return parseBank("embedded", embeddedBank)
}

// OpenBank reads and validates a bank file from disk.
func OpenBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return parseBank(path, data)
}

// ParseBank validates raw bank JSON.
func ParseBank(data []byte) (*Bank, error) {
	return parseBank("bytes", data)
}

// LoadBank opens the bank at path, or the embedded bank when path is empty.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		return DefaultBank()
	}
	return OpenBank(path)
}

func parseBank(origin string, data []byte) (*Bank, error) {
	qs, err := decode(data)
	if err != nil {
		return nil, &LoadError{Source: origin, Err: err}
	}
	encoded, err := json.Marshal(qs)
	if err != nil {
		return nil, &LoadError{Source: origin, Err: fmt.Errorf("encode bank: %w", err)}
	}
	return &Bank{origin: origin, questions: qs, encoded: encoded}, nil
}

// decode runs schema validation, unmarshals, then applies semantic checks.
func decode(data []byte) ([]Question, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := Validate(qs); err != nil {
		return nil, err
	}
	if qs == nil {
		qs = []Question{}
	}
	return qs, nil
}

// Fetch returns a copy of the bank. It never fails.
func (b *Bank) Fetch(_ context.Context) ([]Question, error) {
	return b.Questions(), nil
}

// Questions returns a copy of the question list.
func (b *Bank) Questions() []Question {
	return cloneAll(b.questions)
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Origin describes where the bank was loaded from.
func (b *Bank) Origin() string {
	return b.origin
}

// JSON returns the encoded bank as served by /api/questions.
func (b *Bank) JSON() []byte {
	out := make([]byte, len(b.encoded))
	copy(out, b.encoded)
	return out
}
