// Package lsp implements the thin language-server client the editor core
// consumes: Content-Length framed JSON-RPC over the pipes of a spawned
// server process, with results published to a bounded queue the editor
// drains one item per tick. Requests are fire-and-forget; malformed or
// unrecognized responses are logged and dropped, never surfaced as errors.
package lsp

import (
	"net/url"
	"path/filepath"
)

// DocumentURI is a file:// URI as used by the protocol.
type DocumentURI string

// URIFromPath converts a filesystem path to a file URI.
func URIFromPath(path string) DocumentURI {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return DocumentURI(u.String())
}

// PathFromURI converts a file URI back to a filesystem path, or "" when the
// URI is not a file URI.
func PathFromURI(uri DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

// Position is a zero-based line/character position. Character counts UTF-16
// code units, per the protocol.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a start/end position pair.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location is a position inside a document.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// TextDocumentItem transfers a full document to the server.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentIdentifier names a document.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// TextDocumentPositionParams addresses a position in a document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// DidOpenParams announces an opened document.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// Result is a typed item published by the reader goroutine: a location to
// jump the cursor to. Col is in UTF-16 code units.
type Result struct {
	URI  DocumentURI
	Line int
	Col  int
}
