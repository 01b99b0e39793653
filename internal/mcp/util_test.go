package mcp

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("content length = %d, want 1", len(result.Content))
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] type = %T, want *mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

func TestDataToMCP_Nil(t *testing.T) {
	result := dataToMCP(nil)

	if result.IsError {
		t.Error("IsError = true, want false")
	}
	if got := textOf(t, result); got != "" {
		t.Errorf("text = %q, want empty", got)
	}
}

func TestDataToMCP_Struct(t *testing.T) {
	result := dataToMCP(AskOutput{
		Answer:       "one transfer",
		GraphQLQuery: "{ transfers { id } }",
	})

	if result.IsError {
		t.Fatal("IsError = true, want false")
	}

	var out AskOutput
	if err := json.Unmarshal([]byte(textOf(t, result)), &out); err != nil {
		t.Fatalf("unmarshaling text: %v", err)
	}
	if out.Answer != "one transfer" {
		t.Errorf("answer = %q", out.Answer)
	}
}

func TestDataToMCP_UnmarshalableValue(t *testing.T) {
	result := dataToMCP(math.Inf(1))

	if !result.IsError {
		t.Error("IsError = false, want true for unmarshalable value")
	}
}
