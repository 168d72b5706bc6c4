package schema

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// PayloadValidator guards the payload of a single event. Type describes the
// declared shape; Validate turns a raw JSON payload into a typed value, or
// reports how the candidate diverges from the declaration.
type PayloadValidator interface {
	Type() cty.Type
	Validate(raw json.RawMessage) (cty.Value, error)
}

// ValidationError describes a payload that does not fit its event's declared
// shape. It carries the declared type, the offending raw payload, and the
// underlying conversion failure.
type ValidationError struct {
	WantType cty.Type
	Raw      json.RawMessage
	Reason   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payload does not conform to %s: %s", e.WantType.FriendlyName(), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ctyValidator validates payloads against one cty type constraint.
type ctyValidator struct {
	typ cty.Type
}

// ForType returns a validator accepting any JSON payload that conforms to
// the given cty type. cty.DynamicPseudoType accepts every well-formed JSON
// value, typed by implication.
func ForType(typ cty.Type) PayloadValidator {
	return &ctyValidator{typ: typ}
}

// AnyPayload returns a validator that accepts every well-formed JSON value.
func AnyPayload() PayloadValidator {
	return &ctyValidator{typ: cty.DynamicPseudoType}
}

func (v *ctyValidator) Type() cty.Type {
	return v.typ
}

func (v *ctyValidator) Validate(raw json.RawMessage) (cty.Value, error) {
	typ := v.typ
	if typ == cty.DynamicPseudoType {
		// The wire carries no type information, so a dynamic constraint is
		// resolved from the shape of the payload itself.
		implied, err := ctyjson.ImpliedType(raw)
		if err != nil {
			return cty.NilVal, &ValidationError{WantType: v.typ, Raw: raw, Reason: err}
		}
		typ = implied
	}

	val, err := ctyjson.Unmarshal(raw, typ)
	if err != nil {
		return cty.NilVal, &ValidationError{WantType: v.typ, Raw: raw, Reason: err}
	}
	return val, nil
}
