package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const applicationDataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "full_name": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "date_of_birth": {"type": ["string", "null"]},
    "age": {"type": ["string", "number", "null"]},
    "sex": {"type": ["string", "null"]},
    "mother_tongue": {"type": ["string", "null"]},
    "marital_status": {"type": ["string", "null"]},
    "community": {"type": ["string", "null"]},
    "father_husband_name": {"type": ["string", "null"]},
    "local_address": {"type": ["string", "null"]},
    "permanent_address": {"type": ["string", "null"]},
    "place_of_birth": {"type": ["string", "null"]},
    "course": {"type": ["string", "null"]},
    "photo": {"type": ["string", "null"]},
    "education": {"type": ["array", "null"]},
    "center_email": {"type": ["string", "null"]}
  }
}`

var applicationSchema = jsonschema.MustCompileString("application_data.json", applicationDataSchema)

// validateApplicationData checks that a replacement applicant document is an object whose known
// fields carry the expected JSON types. Unknown fields pass through untouched.
func validateApplicationData(raw []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var document interface{}
	if err := decoder.Decode(&document); err != nil {
		return fmt.Errorf("%w: application data is not valid JSON", ErrInvalidPayload)
	}

	if err := applicationSchema.Validate(document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
