package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeSchemaString(t *testing.T, src string) *Schema {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return DecodeSchema(deref(&n))
}

func TestSchemaKind(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want SchemaKind
	}{
		{"reference wins over siblings", `{$ref: '#/x', type: string}`, SchemaReference},
		{"anyOf", `{anyOf: [{type: string}]}`, SchemaUnion},
		{"oneOf", `{oneOf: [{type: string}]}`, SchemaUnion},
		{"anyOf before allOf", `{anyOf: [{type: string}], allOf: [{type: string}]}`, SchemaUnion},
		{"allOf", `{allOf: [{type: object}]}`, SchemaIntersection},
		{"empty anyOf ignored", `{anyOf: [], type: string}`, SchemaPrimitive},
		{"enum", `{type: string, enum: [a, b]}`, SchemaEnum},
		{"empty enum", `{enum: []}`, SchemaEnum},
		{"const", `{const: 3}`, SchemaConst},
		{"const null", `{const: null}`, SchemaConst},
		{"type array", `{type: [string, integer]}`, SchemaUnion},
		{"type array with null", `{type: [string, "null"]}`, SchemaPrimitive},
		{"string", `{type: string}`, SchemaPrimitive},
		{"integer", `{type: integer}`, SchemaPrimitive},
		{"boolean", `{type: boolean}`, SchemaPrimitive},
		{"pattern without type", `{pattern: "^a"}`, SchemaPrimitive},
		{"pattern with properties", `{pattern: "^a", properties: {}}`, SchemaObject},
		{"array", `{type: array, items: {type: string}}`, SchemaArray},
		{"object", `{type: object}`, SchemaObject},
		{"empty properties", `{properties: {}}`, SchemaObject},
		{"additionalProperties true", `{additionalProperties: true}`, SchemaObject},
		{"additionalProperties schema", `{additionalProperties: {type: string}}`, SchemaObject},
		{"additionalProperties false alone", `{additionalProperties: false}`, SchemaUnknown},
		{"empty schema", `{}`, SchemaUnknown},
		{"null only", `{type: "null"}`, SchemaUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := decodeSchemaString(t, tt.src)
			assert.Equal(t, tt.want, s.Kind(), "kind of %s", tt.src)
		})
	}
}

func TestSchemaTypeArrayMembers(t *testing.T) {
	s := decodeSchemaString(t, `{type: [string, "null", integer], description: d, default: 1, nullable: true, minLength: 2}`)
	require.Equal(t, SchemaUnion, s.Kind())
	assert.True(t, s.DeclaresNullType())

	members := s.Members()
	require.Len(t, members, 2)
	assert.Equal(t, []string{TypeString}, members[0].Types)
	assert.Equal(t, []string{TypeInteger}, members[1].Types)
	for _, m := range members {
		assert.Equal(t, SchemaPrimitive, m.Kind())
		assert.Empty(t, m.Description)
		assert.Nil(t, m.Default)
		assert.False(t, m.Nullable)
	}
	require.NotNil(t, members[0].MinLength)
	assert.Equal(t, "2", members[0].MinLength.String())
}

func TestSchemaNullHelpers(t *testing.T) {
	tests := []struct {
		src          string
		nullOnly     bool
		declaresNull bool
		constNull    bool
	}{
		{`{type: "null"}`, true, true, false},
		{`{type: ["null"]}`, true, true, false},
		{`{const: null}`, true, false, true},
		{`{type: [string, "null"]}`, false, true, false},
		{`{type: string, nullable: true}`, false, false, false},
		{`{}`, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := decodeSchemaString(t, tt.src)
			assert.Equal(t, tt.nullOnly, s.IsNullOnly())
			assert.Equal(t, tt.declaresNull, s.DeclaresNullType())
			assert.Equal(t, tt.constNull, s.ConstIsNull())
		})
	}
}

func TestDecodeSchemaKeywords(t *testing.T) {
	s := decodeSchemaString(t, `
type: object
description: A user
schemaName: User
required: [id, email]
additionalProperties: false
properties:
  id: {type: integer, minimum: 1, maximum: 10}
  email: {type: string, format: email, maxLength: 255}
  tags:
    type: array
    items: {type: string}
    minItems: 1
    maxItems: 5
  ratio: {type: number, exclusiveMinimum: 0, exclusiveMaximum: 1}
default: {id: 1}
`)
	assert.Equal(t, "User", s.NamedTypeAlias)
	assert.Equal(t, "A user", s.Description)
	assert.Equal(t, `{"id":1}`, string(s.Default))
	require.NotNil(t, s.AdditionalProperties)
	assert.False(t, s.AdditionalProperties.Allowed)
	assert.True(t, s.IsRequired("email"))
	assert.False(t, s.IsRequired("tags"))

	require.Len(t, s.Properties, 4)
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"id", "email", "tags", "ratio"}, names)

	id := s.Properties[0].Schema
	assert.Equal(t, "1", id.Minimum.String())
	assert.Equal(t, "10", id.Maximum.String())

	email := s.Properties[1].Schema
	assert.Equal(t, "email", email.Format)
	assert.Equal(t, "255", email.MaxLength.String())

	tags := s.Properties[2].Schema
	assert.Equal(t, SchemaArray, tags.Kind())
	assert.Equal(t, SchemaPrimitive, tags.Items.Kind())
	assert.Equal(t, "1", tags.MinItems.String())
	assert.Equal(t, "5", tags.MaxItems.String())

	ratio := s.Properties[3].Schema
	assert.Equal(t, "0", ratio.ExclusiveMinimum.String())
	assert.Equal(t, "1", ratio.ExclusiveMaximum.String())
}

func TestDecodeSchemaExclusiveBooleans(t *testing.T) {
	s := decodeSchemaString(t, `{type: number, minimum: 0, exclusiveMinimum: true, maximum: 5, exclusiveMaximum: false}`)
	assert.Nil(t, s.Minimum)
	require.NotNil(t, s.ExclusiveMinimum)
	assert.Equal(t, "0", s.ExclusiveMinimum.String())
	require.NotNil(t, s.Maximum)
	assert.Equal(t, "5", s.Maximum.String())
	assert.Nil(t, s.ExclusiveMaximum)
}

func TestDecodeSchemaAliasKeys(t *testing.T) {
	assert.Equal(t, "Order", decodeSchemaString(t, `{x-schema-name: Order}`).NamedTypeAlias)
	assert.Equal(t, "Order", decodeSchemaString(t, `{schemaName: Order}`).NamedTypeAlias)
}

func TestDecodeSchemaEnumLiterals(t *testing.T) {
	s := decodeSchemaString(t, `{enum: [b, 2, true, null, 1.25, [1], "3"]}`)
	require.Len(t, s.Enum, 7)
	assert.Equal(t, StringLiteral("b"), s.Enum[0])
	assert.Equal(t, LiteralNumber, s.Enum[1].Kind)
	assert.Equal(t, "2", s.Enum[1].Number.String())
	assert.Equal(t, BoolLiteral(true), s.Enum[2])
	assert.Equal(t, NullLiteral(), s.Enum[3])
	assert.Equal(t, "1.25", s.Enum[4].Number.String())
	assert.Equal(t, LiteralJSON, s.Enum[5].Kind)
	assert.Equal(t, `[1]`, string(s.Enum[5].Raw))
	assert.Equal(t, StringLiteral("3"), s.Enum[6])
}

func TestDecodeSchemaLenient(t *testing.T) {
	// Keywords of the wrong shape are skipped.
	s := decodeSchemaString(t, `{type: object, properties: [a], items: 3, required: {a: 1}, minLength: abc}`)
	assert.Equal(t, SchemaObject, s.Kind())
	assert.Empty(t, s.Properties)
	assert.False(t, s.PropertiesDeclared)
	assert.Nil(t, s.Items)
	assert.Empty(t, s.Required)
	assert.Nil(t, s.MinLength)
}
