package questions

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://kompak/question-bank.json"

// bankSchema describes the wire format of /api/questions.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "pertanyaan", "pilihan", "jawaban"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer"},
      "pertanyaan": {"type": "string", "minLength": 1},
      "pilihan": {
        "type": "array",
        "minItems": 2,
        "items": {"type": "string", "minLength": 1}
      },
      "jawaban": {"type": "string", "minLength": 1},
      "penjelasan": {"type": "string"}
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// bankSchemaCompiled compiles the bank schema once per process.
func bankSchemaCompiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(bankSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateSchema checks raw bank JSON against the bank schema.
func validateSchema(data []byte) error {
	sch, err := bankSchemaCompiled()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
