package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/mgomes/lox/lox"
)

func newTestLSPServer() *lspServer {
	return newLSPServer(lox.MustNewEngine(lox.Config{}), strings.NewReader(""), &strings.Builder{})
}

func frame(payload string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)
}

func lspRequest(t *testing.T, method string, id int, params any) lspInboundMessage {
	t.Helper()
	msg := lspInboundMessage{JSONRPC: "2.0", Method: method}
	if id > 0 {
		raw := json.RawMessage(fmt.Sprintf("%d", id))
		msg.ID = &raw
	}
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		msg.Params = payload
	}
	return msg
}

func openDocument(t *testing.T, server *lspServer, uri, text string) []lspOutboundMessage {
	t.Helper()
	return server.handleMessage(lspRequest(t, "textDocument/didOpen", 0, map[string]any{
		"textDocument": map[string]any{"uri": uri, "text": text},
	}))
}

func TestRunLSPExitsOnEOF(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-lsp")
	if code != lox.ExitOK {
		t.Fatalf("unexpected exit %d, stderr %q", code, stderr)
	}
	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
}

func TestRunLSPAnswersInitialize(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		frame(`{"jsonrpc":"2.0","method":"exit"}`)
	code, stdout, stderr := runCLI(t, input, "-lsp")
	if code != lox.ExitOK {
		t.Fatalf("unexpected exit %d, stderr %q", code, stderr)
	}
	if !strings.HasPrefix(stdout, "Content-Length: ") {
		t.Fatalf("expected framed response, got %q", stdout)
	}
	if !strings.Contains(stdout, `"hoverProvider":true`) {
		t.Fatalf("expected capabilities in response, got %q", stdout)
	}
}

func TestRunLSPRejectsMissingContentLength(t *testing.T) {
	code, _, stderr := runCLI(t, "X-Other: 1\r\n\r\n{}", "-lsp")
	if code == lox.ExitOK {
		t.Fatalf("expected failure for missing header")
	}
	if !strings.Contains(stderr, "missing Content-Length header") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	if diags := diagnosticsForSource("var a = 1;\nprint a;\n"); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestDiagnosticsForSourceUsesDiagnosticPositions(t *testing.T) {
	diags := diagnosticsForSource("var a = 1;\nprint a +;\nreturn 2;\n")
	if len(diags) != 1 {
		t.Fatalf("expected one parse diagnostic, got %v", diags)
	}
	first := diags[0]
	if first["message"] != "Expect expression." {
		t.Fatalf("unexpected message %#v", first["message"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 9 {
		t.Fatalf("unexpected start %v", start)
	}
	if first["severity"] != 1 || first["source"] != "lox" {
		t.Fatalf("unexpected diagnostic metadata %v", first)
	}
}

func TestDiagnosticsForSourceReportsResolveErrors(t *testing.T) {
	diags := diagnosticsForSource("{ var a = 1; var a = 2; }")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0]["message"] != "Already a variable with this name in this scope." {
		t.Fatalf("unexpected message %#v", diags[0]["message"])
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newTestLSPServer()
	messages := openDocument(t, server, "file:///tmp/test.lox", "print 1")
	if len(messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method %q", messages[0].Method)
	}
	params := messages[0].Params.(map[string]any)
	if params["uri"] != "file:///tmp/test.lox" {
		t.Fatalf("unexpected uri %v", params["uri"])
	}
	if diags := params["diagnostics"].([]map[string]any); len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
}

func TestHandleMessageDidChangeUsesLatestText(t *testing.T) {
	server := newTestLSPServer()
	openDocument(t, server, "file:///a.lox", "print 1")
	messages := server.handleMessage(lspRequest(t, "textDocument/didChange", 0, map[string]any{
		"textDocument":   map[string]any{"uri": "file:///a.lox"},
		"contentChanges": []map[string]any{{"text": "print"}, {"text": "print 1;"}},
	}))
	if len(messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(messages))
	}
	diags := messages[0].Params.(map[string]any)["diagnostics"].([]map[string]any)
	if len(diags) != 0 {
		t.Fatalf("expected clean document, got %v", diags)
	}
	if server.docs["file:///a.lox"] != "print 1;" {
		t.Fatalf("document not updated: %q", server.docs["file:///a.lox"])
	}

	server.handleMessage(lspRequest(t, "textDocument/didClose", 0, map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.lox"},
	}))
	if _, ok := server.docs["file:///a.lox"]; ok {
		t.Fatalf("expected document to be dropped on close")
	}
}

func TestCompletionIncludesDeclarations(t *testing.T) {
	server := newTestLSPServer()
	source := "var total = 0;\nfun add(a, b) { return a + b; }\nclass Point {}\n"
	items := server.completionItems(source)

	labels := make([]string, 0, len(items))
	byLabel := make(map[string]map[string]any)
	for _, item := range items {
		label := item["label"].(string)
		labels = append(labels, label)
		byLabel[label] = item
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted labels, got %v", labels)
	}

	cases := []struct {
		label  string
		kind   int
		detail string
	}{
		{"while", lspKindKeyword, "keyword"},
		{"clock", lspKindFunction, "native"},
		{"total", lspKindVariable, "variable"},
		{"add", lspKindFunction, "function"},
		{"Point", lspKindClass, "class"},
	}
	for _, tc := range cases {
		item, ok := byLabel[tc.label]
		if !ok {
			t.Fatalf("missing completion %q in %v", tc.label, labels)
		}
		if item["kind"] != tc.kind || item["detail"] != tc.detail {
			t.Fatalf("%s: unexpected item %v", tc.label, item)
		}
	}
}

func TestHoverClassifiesWords(t *testing.T) {
	server := newTestLSPServer()
	openDocument(t, server, "file:///h.lox", "fun greet() { print clock(); }\nwhile (false) greet();")

	cases := []struct {
		line, character int
		want            string
	}{
		{0, 5, "`greet`\n\nLox function"},
		{0, 21, "`clock`\n\nLox native function"},
		{1, 2, "`while`\n\nLox keyword"},
	}
	for _, tc := range cases {
		messages := server.handleMessage(lspRequest(t, "textDocument/hover", 7, map[string]any{
			"textDocument": map[string]any{"uri": "file:///h.lox"},
			"position":     map[string]any{"line": tc.line, "character": tc.character},
		}))
		if len(messages) != 1 {
			t.Fatalf("expected one response, got %d", len(messages))
		}
		result, ok := messages[0].Result.(map[string]any)
		if !ok {
			t.Fatalf("expected hover result at %d:%d, got %#v", tc.line, tc.character, messages[0].Result)
		}
		value := result["contents"].(map[string]any)["value"]
		if value != tc.want {
			t.Fatalf("%d:%d: got %q want %q", tc.line, tc.character, value, tc.want)
		}
	}
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := newTestLSPServer()
	messages := server.handleMessage(lspRequest(t, "workspace/symbol", 3, nil))
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method-not-found, got %+v", messages)
	}
	if got := server.handleMessage(lspRequest(t, "workspace/didChangeConfiguration", 0, nil)); got != nil {
		t.Fatalf("notifications get no reply, got %+v", got)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "var foo_bar = 1;\n"
	cases := []struct {
		character int
		want      string
	}{
		{0, "var"},
		{3, "var"},
		{4, "foo_bar"},
		{11, "foo_bar"},
		{12, ""},
		{99, "1"},
	}
	for _, tc := range cases {
		if got := wordAtPosition(source, 0, tc.character); got != tc.want {
			t.Fatalf("character %d: got %q want %q", tc.character, got, tc.want)
		}
	}
	if got := wordAtPosition(source, 5, 0); got != "" {
		t.Fatalf("expected empty word past end, got %q", got)
	}
}

func TestDiagnosticsForSourceUnterminatedStringStaysOnOneLine(t *testing.T) {
	diags := diagnosticsForSource("print \"one\ntwo")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	start := diags[0]["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 3 {
		t.Fatalf("expected start 1:3 at the end of the string, got %v", start)
	}
}
