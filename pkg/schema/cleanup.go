package schema

import (
	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-model2ts/pkg/model"
)

// Clean post-processes one rendered schema object:
//
//  1. Property titles are removed. Left in place, every property would surface
//     as its own named interface in the generated output.
//  2. additionalProperties is forced to false unless the model's extra-field
//     policy is exactly ExtraAllow, whose default rendering already permits
//     extras and must not be overridden.
//
// Clean mutates only the object it is given — nested and referenced
// definitions are never touched — and is idempotent.
func Clean(s *jsonschema.Schema, policy model.ExtraPolicy) {
	if s == nil {
		return
	}

	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value != nil {
				pair.Value.Title = ""
			}
		}
	}

	if policy != model.ExtraAllow {
		s.AdditionalProperties = jsonschema.FalseSchema
	}
}
