package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/naming"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
	"github.com/arienkock/codified-architecture/oasgen/synth"
	"github.com/arienkock/codified-architecture/oasgen/zod"
)

func archiveFile(t *testing.T, a *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive has no file %q", name)
	return ""
}

func TestRenderGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			require.NoError(t, err)

			doc, err := openapi.Decode([]byte(archiveFile(t, a, "openapi.yaml")))
			require.NoError(t, err)
			ops, err := synth.New(doc.Resolver()).Operations(doc)
			require.NoError(t, err)

			e, err := New(Options{DomainImport: "../../domain-seam/types"})
			require.NoError(t, err)
			for _, op := range ops {
				got, err := e.Render(op)
				require.NoError(t, err)
				assert.Equal(t, archiveFile(t, a, op.Handler.FileName()), string(got))
			}
		})
	}
}

func testOperation(responses ...synth.Response) *synth.Operation {
	empty := ir.Object().Strict()
	return &synth.Operation{
		Method:       "get",
		Path:         "/things/{id}",
		Handler:      naming.ForOperation("getThing", "get", "/things/{id}"),
		PathParams:   empty,
		QueryParams:  empty,
		HeaderParams: empty,
		CookieParams: empty,
		RequestBody:  ir.Undefined(),
		Responses:    responses,
	}
}

func TestRenderFrontmatterAndImports(t *testing.T) {
	e, err := New(Options{
		Namespace:   "Domain",
		ZodImport:   "zod/v4",
		Frontmatter: "\n/* eslint-disable */\n",
	})
	require.NoError(t, err)

	got, err := e.Render(testOperation(synth.Response{Status: "200", Schema: ir.String()}))
	require.NoError(t, err)
	out := string(got)

	assert.True(t, strings.HasPrefix(out, "/* eslint-disable */\n// Code generated by oasgen. DO NOT EDIT.\n"), out)
	assert.Contains(t, out, "import { z } from \"zod/v4\";\n")
	assert.NotContains(t, out, "import * as Domain")
	assert.Contains(t, out, "export type GetThingHandlerResponse = { status: \"200\"; body: GetThingHandlerResponseBodies[\"200\"] };")
	assert.Contains(t, out, "export const getThingHandler = {")
	assert.Contains(t, out, "  path: \"/things/{id}\",")
}

func TestCustomTemplate(t *testing.T) {
	e, err := New(Options{Template: `{{ .HANDLER_NAME }} {{ .HTTP_METHOD }} {{ .PATH | upper }} {{ .REQUEST_BODY_SCHEMA }}`})
	require.NoError(t, err)
	got, err := e.Render(testOperation())
	require.NoError(t, err)
	assert.Equal(t, "GetThingHandler GET /THINGS/{ID} z.undefined()", string(got))
}

func TestCustomTemplateErrors(t *testing.T) {
	_, err := New(Options{Template: `{{ .HANDLER_NAME `})
	assert.ErrorContains(t, err, "parse handler template")

	e, err := New(Options{Template: `{{ .NO_SUCH_KEY }}`})
	require.NoError(t, err)
	_, err = e.Render(testOperation())
	assert.ErrorContains(t, err, "GetThingHandler")
}

func TestDataKeys(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	data := e.Data(testOperation())
	for _, key := range []string{
		"FRONTMATTER", "ZOD_IMPORT", "ADDITIONAL_IMPORTS",
		"PATH_PARAMS_SCHEMA", "QUERY_PARAMS_SCHEMA", "HEADER_PARAMS_SCHEMA", "COOKIE_PARAMS_SCHEMA",
		"REQUEST_BODY_SCHEMA", "RESPONSE_SCHEMAS", "HANDLER_RESPONSE_TYPE_MAP", "HANDLER_RESPONSE_UNION",
		"HANDLER_NAME", "HANDLER_VAR_NAME", "HTTP_METHOD", "PATH", "DOC_COMMENT",
	} {
		assert.Contains(t, data, key)
	}
	assert.Equal(t, "zod", data["ZOD_IMPORT"])
}

func TestResponseHelpers(t *testing.T) {
	responses := []synth.Response{
		{Status: "200", Schema: ir.Object(ir.Field{Name: "a", Value: ir.String()})},
		{Status: "default", Schema: ir.Undefined()},
	}

	assert.Equal(t,
		"  \"200\": z.object({\n    \"a\": z.string()\n  }),\n  \"default\": z.undefined(),",
		ResponseSchemas(&zod.Renderer{}, responses))
	assert.Equal(t,
		"  \"200\": z.infer<(typeof responseSchemas)[\"200\"]>;\n  \"default\": z.infer<(typeof responseSchemas)[\"default\"]>;",
		ResponseTypeMap(responses))
	assert.Equal(t,
		`{ status: "200"; body: HResponseBodies["200"] } | { status: "default"; body: HResponseBodies["default"] }`,
		ResponseUnion(responses, "H"))
	assert.Equal(t,
		`{ status: "default"; body: HResponseBodies["default"] }`,
		ResponseUnion(responses[1:], "H"), "a single status is not wrapped in a union")
	assert.Equal(t, "{ status: number; body: unknown }", ResponseUnion(nil, "H"))
}

func TestIndex(t *testing.T) {
	ops := []*synth.Operation{
		{Handler: naming.ForOperation("listUsers", "get", "/users")},
		{Handler: naming.ForOperation("createUser", "post", "/users")},
		{Handler: naming.ForOperation("", "get", "/health")},
	}
	want := "export * from './create-user.handler.js';\n" +
		"export * from './get-health.handler.js';\n" +
		"export * from './list-users.handler.js';\n"
	assert.Equal(t, want, string(Index(ops)))
	assert.Equal(t, "ListUsersHandler", ops[0].Handler.Name, "input order is left alone")

	assert.Empty(t, Index(nil))
}

func TestImportPath(t *testing.T) {
	tests := []struct {
		name    string
		fromDir string
		target  string
		want    string
	}{
		{"defaults", "src/webServer/generated/handlers", "src/domain-seam/types.ts", "../../../domain-seam/types"},
		{"same directory", "out", "out/types.ts", "./types"},
		{"child directory", "out", "out/domain/types.d.ts", "./domain/types.d"},
		{"no extension", "a/b", "a/c/types", "../c/types"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportPath(tt.fromDir, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultTemplateIsEmbedded(t *testing.T) {
	want, err := os.ReadFile("templates/domain-handler.ts.tmpl")
	require.NoError(t, err)
	assert.Equal(t, string(want), DefaultTemplate())
}

func TestDocComment(t *testing.T) {
	tests := []struct {
		name        string
		summary     string
		description string
		want        string
	}{
		{name: "empty", want: ""},
		{name: "blank", summary: "  ", description: "\n", want: ""},
		{name: "summary", summary: "Get a thing", want: "/**\n * Get a thing\n */"},
		{
			name:        "summary and description",
			summary:     "Get a thing",
			description: "Looks it up by id.\nFails when missing.\n",
			want:        "/**\n * Get a thing\n *\n * Looks it up by id.\n * Fails when missing.\n */",
		},
		{name: "comment terminator", description: "a */ b", want: "/**\n * a *\\/ b\n */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocComment(tt.summary, tt.description))
		})
	}
}

func TestRenderDocComment(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)

	op := testOperation(synth.Response{Status: "200", Schema: ir.Undefined()})
	out, err := e.Render(op)
	require.NoError(t, err)
	assert.Contains(t, string(out), "}\n\nexport const getThingHandler = {")

	op.Summary = "Get a thing"
	out, err = e.Render(op)
	require.NoError(t, err)
	assert.Contains(t, string(out), "}\n\n/**\n * Get a thing\n */\nexport const getThingHandler = {")
}
