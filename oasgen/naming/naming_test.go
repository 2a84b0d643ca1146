package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"createUser", []string{"create", "User"}},
		{"post /users/{id}", []string{"post", "users", "id"}},
		{"v2Users", []string{"v2", "Users"}},
		{"HTTPStatus", []string{"HTTPStatus"}},
		{"snake_case-and.dots", []string{"snake", "case", "and", "dots"}},
		{"  ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestCases(t *testing.T) {
	tests := []struct {
		input  string
		pascal string
		camel  string
		kebab  string
	}{
		{"createUser", "CreateUser", "createUser", "create-user"},
		{"get_HTTPStatus", "GetHttpstatus", "getHttpstatus", "get-httpstatus"},
		{"LIST ITEMS", "ListItems", "listItems", "list-items"},
		{"v2Users", "V2Users", "v2Users", "v2-users"},
		{"", "Generated", "generated", "generated"},
		{"{}/", "Generated", "generated", "generated"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.pascal, Pascal(tt.input), "Pascal")
			assert.Equal(t, tt.camel, Camel(tt.input), "Camel")
			assert.Equal(t, tt.kebab, Kebab(tt.input), "Kebab")
		})
	}
}

func TestForOperation(t *testing.T) {
	tests := []struct {
		name        string
		operationID string
		method      string
		path        string
		want        Handler
	}{
		{
			name:        "operation id",
			operationID: "createUser",
			method:      "post",
			path:        "/users",
			want: Handler{
				Base:     "CreateUser",
				Name:     "CreateUserHandler",
				VarName:  "createUserHandler",
				FileStem: "create-user.handler",
			},
		},
		{
			name:   "method and path",
			method: "get",
			path:   "/users/{userId}/posts",
			want: Handler{
				Base:     "GetUsersUserIdPosts",
				Name:     "GetUsersUserIdPostsHandler",
				VarName:  "getUsersUserIdPostsHandler",
				FileStem: "get-users-user-id-posts.handler",
			},
		},
		{
			name:   "root path",
			method: "delete",
			path:   "/",
			want: Handler{
				Base:     "Delete",
				Name:     "DeleteHandler",
				VarName:  "deleteHandler",
				FileStem: "delete.handler",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForOperation(tt.operationID, tt.method, tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.FileStem+".ts", got.FileName())
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"CreateUserHandler", true},
		{"_private", true},
		{"$field", true},
		{"field123", true},
		{"123abcHandler", false},
		{"my-field", false},
		{"my field", false},
		{"class", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsIdentifier(tt.input); got != tt.want {
				t.Errorf("IsIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
