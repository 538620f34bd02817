package service

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// TransactionValidator checks raw transaction payloads against the embedded JSON schemas.
type TransactionValidator struct {
	create *gojsonschema.Schema
	update *gojsonschema.Schema
}

// NewTransactionValidator compiles the create and update schemas.
func NewTransactionValidator() (*TransactionValidator, error) {
	create, err := loadSchema("schemas/transaction_create.schema.json")
	if err != nil {
		return nil, err
	}
	update, err := loadSchema("schemas/transaction_update.schema.json")
	if err != nil {
		return nil, err
	}
	return &TransactionValidator{create: create, update: update}, nil
}

func loadSchema(name string) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidateCreate validates a create payload.
func (v *TransactionValidator) ValidateCreate(payload []byte) error {
	return validate(v.create, payload)
}

// ValidateUpdate validates an update payload.
func (v *TransactionValidator) ValidateUpdate(payload []byte) error {
	return validate(v.update, payload)
}

func validate(schema *gojsonschema.Schema, payload []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return Invalid("request body is not valid JSON")
	}
	if res.Valid() {
		return nil
	}
	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.Field()+": "+e.Description())
	}
	return Invalid(strings.Join(details, "; "))
}
