package dump

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/settings"
)

const api = `
openapi: 3.1.0
info: {title: t, version: "1"}
paths:
  /users/{id}:
    get:
      operationId: getUser
      parameters:
        - {name: id, in: path, required: true, schema: {type: string}}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/User'}
    delete:
      responses:
        "204": {description: gone}
components:
  schemas:
    User: {type: object, schemaName: User}
`

type dumped struct {
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	OperationID string         `json:"operationId"`
	Handler     string         `json:"handler"`
	File        string         `json:"file"`
	PathParams  map[string]any `json:"pathParams"`
	RequestBody map[string]any `json:"requestBody"`
	Responses   []struct {
		Status string         `json:"status"`
		Schema map[string]any `json:"schema"`
	} `json:"responses"`
}

func run(t *testing.T, cmd *Cmd) ([]dumped, error) {
	t.Helper()
	src := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(src, []byte(api), 0644))
	cmd.Document = settings.Source{Source: src}

	var stdout bytes.Buffer
	err := cmd.Run(&settings.Globals{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Env:    settings.Env{DomainNamespace: "Types"},
		Stdout: &stdout,
		Stderr: io.Discard,
	})
	if err != nil {
		return nil, err
	}
	var out []dumped
	require.NoError(t, gojson.Unmarshal(stdout.Bytes(), &out))
	return out, nil
}

func TestDump(t *testing.T) {
	ops, err := run(t, &Cmd{})
	require.NoError(t, err)
	require.Len(t, ops, 2)

	get := ops[0]
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "/users/{id}", get.Path)
	assert.Equal(t, "getUser", get.OperationID)
	assert.Equal(t, "GetUserHandler", get.Handler)
	assert.Equal(t, "get-user.handler.ts", get.File)
	assert.Equal(t, "object", get.PathParams["kind"])
	assert.Equal(t, "strict", get.PathParams["closing"])
	assert.Equal(t, "undefined", get.RequestBody["kind"])
	require.Len(t, get.Responses, 1)
	assert.Equal(t, "200", get.Responses[0].Status)
	assert.Equal(t, map[string]any{"kind": "named", "namespace": "Types", "name": "User"}, get.Responses[0].Schema)

	assert.Equal(t, "DeleteUsersIdHandler", ops[1].Handler)
	assert.Empty(t, ops[1].OperationID)
}

func TestDumpSingleOperation(t *testing.T) {
	for _, name := range []string{"getUser", "GetUserHandler"} {
		t.Run(name, func(t *testing.T) {
			ops, err := run(t, &Cmd{Operation: name})
			require.NoError(t, err)
			require.Len(t, ops, 1)
			assert.Equal(t, "GET", ops[0].Method)
		})
	}
}

func TestDumpUnknownOperation(t *testing.T) {
	_, err := run(t, &Cmd{Operation: "nope"})
	assert.ErrorContains(t, err, `no operation "nope"`)
}
