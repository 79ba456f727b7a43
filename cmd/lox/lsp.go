package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mgomes/lox/lox"
)

const (
	lspKindFunction = 3
	lspKindVariable = 6
	lspKindClass    = 7
	lspKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

// lspServer answers editor requests over stdio. It only runs the static
// phases; scripts are never executed.
type lspServer struct {
	reader  *bufio.Reader
	writer  *bufio.Writer
	natives []string
	docs    map[string]string
}

func newLSPServer(engine *lox.Engine, r io.Reader, w io.Writer) *lspServer {
	natives := make([]string, 0)
	for name := range engine.Builtins() {
		natives = append(natives, name)
	}
	slices.Sort(natives)
	return &lspServer{
		reader:  bufio.NewReader(r),
		writer:  bufio.NewWriter(w),
		natives: natives,
		docs:    make(map[string]string),
	}
}

func runLSP(cfg lox.Config, stdin io.Reader, stdout io.Writer) error {
	return newLSPServer(lox.MustNewEngine(cfg), stdin, stdout).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func reply(id *json.RawMessage, result any) []lspOutboundMessage {
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: id, Result: result}}
}

func replyError(id *json.RawMessage, code int, message string) []lspOutboundMessage {
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: id, Error: &lspResponseError{Code: code, Message: message}}}
}

var serverCapabilities = map[string]any{
	"capabilities": map[string]any{
		"textDocumentSync":   1,
		"hoverProvider":      true,
		"completionProvider": map[string]any{"resolveProvider": false},
	},
	"serverInfo": map[string]any{"name": "lox"},
}

// handleMessage returns the responses and notifications for one inbound
// message. Notifications never get an error reply.
func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return reply(incoming.ID, serverCapabilities)
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return reply(incoming.ID, nil)
	case "textDocument/didOpen":
		return s.didOpen(incoming.Params)
	case "textDocument/didChange":
		return s.didChange(incoming.Params)
	case "textDocument/didClose":
		var params lspDidCloseParams
		if json.Unmarshal(incoming.Params, &params) == nil {
			delete(s.docs, params.TextDocument.URI)
		}
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return reply(incoming.ID, map[string]any{
			"isIncomplete": false,
			"items":        s.completionItems(s.docs[params.TextDocument.URI]),
		})
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		return s.hover(incoming.ID, incoming.Params)
	default:
		if incoming.ID == nil {
			return nil
		}
		return replyError(incoming.ID, -32601, "method not found")
	}
}

func (s *lspServer) didOpen(raw json.RawMessage) []lspOutboundMessage {
	var params lspDidOpenParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil
	}
	return s.store(params.TextDocument.URI, params.TextDocument.Text)
}

// didChange expects full-document sync, so only the last change matters.
func (s *lspServer) didChange(raw json.RawMessage) []lspOutboundMessage {
	var params lspDidChangeParams
	if err := json.Unmarshal(raw, &params); err != nil || len(params.ContentChanges) == 0 {
		return nil
	}
	return s.store(params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text)
}

func (s *lspServer) store(uri, text string) []lspOutboundMessage {
	s.docs[uri] = text
	return []lspOutboundMessage{publishDiagnostics(uri, text)}
}

func (s *lspServer) hover(id *json.RawMessage, raw json.RawMessage) []lspOutboundMessage {
	var params lspTextDocumentPositionParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return replyError(id, -32602, "invalid hover params")
	}
	source := s.docs[params.TextDocument.URI]
	word := wordAtPosition(source, params.Position.Line, params.Position.Character)
	if word == "" {
		return reply(id, nil)
	}
	return reply(id, map[string]any{
		"contents": map[string]any{
			"kind":  "markdown",
			"value": fmt.Sprintf("`%s`\n\nLox %s", word, s.classifyWord(source, word)),
		},
	})
}

func publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source),
		},
	}
}

// diagnosticsForSource converts static errors to zero-based LSP ranges.
func diagnosticsForSource(source string) []map[string]any {
	err := lox.Check(source)
	if err == nil {
		return []map[string]any{}
	}

	var static *lox.StaticError
	if !errors.As(err, &static) {
		return []map[string]any{newDiagnostic(0, 0, 1, err.Error())}
	}

	out := make([]map[string]any, 0, len(static.Diagnostics))
	for _, d := range static.Diagnostics {
		width := max(1, len([]rune(d.Where)))
		out = append(out, newDiagnostic(max(0, d.Line-1), max(0, d.Column-1), width, d.Message))
	}
	return out
}

func newDiagnostic(line, character, width int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + width,
			},
		},
		"severity": 1,
		"source":   "lox",
		"message":  message,
	}
}

// declaredNames collects top-level var, fun and class names. A document
// that does not parse still yields the declarations before the fault.
func declaredNames(source string) map[string]int {
	tokens, _ := lox.Scan(source)
	stmts, _ := lox.Parse(tokens)
	names := make(map[string]int)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *lox.VarStmt:
			names[s.Name.Lexeme] = lspKindVariable
		case *lox.FunctionStmt:
			names[s.Name.Lexeme] = lspKindFunction
		case *lox.ClassStmt:
			names[s.Name.Lexeme] = lspKindClass
		}
	}
	return names
}

func (s *lspServer) completionItems(source string) []map[string]any {
	kinds := declaredNames(source)
	details := make(map[string]string, len(kinds))
	for name, kind := range kinds {
		details[name] = kindDetail(kind)
	}
	for _, name := range s.natives {
		kinds[name] = lspKindFunction
		details[name] = "native"
	}
	for _, keyword := range replKeywords {
		kinds[keyword] = lspKindKeyword
		details[keyword] = "keyword"
	}

	labels := make([]string, 0, len(kinds))
	for label := range kinds {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kinds[label],
			"detail": details[label],
		})
	}
	return items
}

func kindDetail(kind int) string {
	switch kind {
	case lspKindClass:
		return "class"
	case lspKindFunction:
		return "function"
	default:
		return "variable"
	}
}

func (s *lspServer) classifyWord(source, word string) string {
	if slices.Contains(replKeywords, word) {
		return "keyword"
	}
	if slices.Contains(s.natives, word) {
		return "native function"
	}
	if kind, ok := declaredNames(source)[word]; ok {
		return kindDetail(kind)
	}
	return "symbol"
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}
	character = min(max(character, 0), len(runes))

	cursor := character
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
