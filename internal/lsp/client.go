package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/scribe-editor/scribe/internal/log"
)

// Client talks to one language server process. All requests are one-way:
// the caller sends and moves on; any response arrives later on the result
// queue. There is no cancellation; a response for a document the editor has
// since closed is simply ignored by the caller.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	logger *log.Logger
	queue  *Queue

	nextID  atomic.Int64
	mu      sync.Mutex
	pending map[int64]string // request id -> method
	closed  bool

	done chan struct{}
}

// Start spawns the server command and begins the reader goroutine. An
// initialize request and initialized notification are sent immediately; the
// initialize response is consumed by the reader like any other.
func Start(command []string, logger *log.Logger) (*Client, error) {
	if len(command) == 0 {
		return nil, errors.New("empty language server command")
	}
	cmd := exec.Command(command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", command[0], err)
	}

	c := &Client{
		cmd:     cmd,
		stdin:   stdin,
		logger:  logger,
		queue:   NewQueue(16),
		pending: make(map[int64]string),
		done:    make(chan struct{}),
	}
	go c.readLoop(stdout)

	c.request("initialize", map[string]any{
		"processId":    nil,
		"capabilities": map[string]any{},
	})
	c.notify("initialized", map[string]any{})
	return c, nil
}

// DidOpen announces a document with its full text.
func (c *Client) DidOpen(uri DocumentURI, languageID, text string) {
	c.notify("textDocument/didOpen", DidOpenParams{
		TextDocument: TextDocumentItem{
			URI:        uri,
			LanguageID: languageID,
			Version:    1,
			Text:       text,
		},
	})
}

// Definition asks where the symbol at pos is defined. The answer, if any,
// shows up on the queue as a Result.
func (c *Client) Definition(uri DocumentURI, pos Position) {
	c.request("textDocument/definition", TextDocumentPositionParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
		Position:     pos,
	})
}

// Drain returns at most one queued result without blocking.
func (c *Client) Drain() (Result, bool) {
	return c.queue.TryPop()
}

// Close shuts down the server process.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.notify("exit", nil)
	c.stdin.Close()
	<-c.done
	return c.cmd.Wait()
}

func (c *Client) request(method string, params any) {
	id := c.nextID.Add(1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending[id] = method
	err := writeFrame(c.stdin, request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	c.mu.Unlock()
	if err != nil && c.logger != nil {
		c.logger.Warnf("lsp send %s: %v", method, err)
	}
}

func (c *Client) notify(method string, params any) {
	c.mu.Lock()
	if c.closed && method != "exit" {
		c.mu.Unlock()
		return
	}
	err := writeFrame(c.stdin, request{JSONRPC: "2.0", Method: method, Params: params})
	c.mu.Unlock()
	if err != nil && c.logger != nil {
		c.logger.Warnf("lsp send %s: %v", method, err)
	}
}

// readLoop parses incoming frames until the pipe closes. Anything it cannot
// understand is logged and dropped.
func (c *Client) readLoop(stdout io.Reader) {
	defer close(c.done)
	r := bufio.NewReaderSize(stdout, 64*1024)
	for {
		payload, err := readFrame(r)
		if err != nil {
			if err != io.EOF && !errors.Is(err, io.ErrUnexpectedEOF) && c.logger != nil {
				c.logger.Warnf("lsp read: %v", err)
			}
			return
		}
		c.handle(payload)
	}
}

func (c *Client) handle(payload []byte) {
	if !gjson.ValidBytes(payload) {
		if c.logger != nil {
			c.logger.Warnf("lsp: dropping invalid JSON frame (%d bytes)", len(payload))
		}
		return
	}
	msg := gjson.ParseBytes(payload)

	id := msg.Get("id")
	if !id.Exists() || msg.Get("method").Exists() {
		// Server-initiated notification or request; nothing the core
		// consumes today.
		return
	}

	c.mu.Lock()
	method, ok := c.pending[id.Int()]
	delete(c.pending, id.Int())
	c.mu.Unlock()
	if !ok {
		if c.logger != nil {
			c.logger.Warnf("lsp: response for unknown request id %d", id.Int())
		}
		return
	}

	if rpcErr := msg.Get("error"); rpcErr.Exists() {
		if c.logger != nil {
			c.logger.Warnf("lsp %s: %s", method, rpcErr.Get("message").String())
		}
		return
	}
	if method != "textDocument/definition" {
		return
	}

	loc, ok := firstLocation(msg.Get("result"))
	if !ok {
		if c.logger != nil {
			c.logger.Warnf("lsp: unrecognized definition result, dropping")
		}
		return
	}
	c.queue.Push(loc)
}

// firstLocation extracts a jump target from a definition result, which may
// be a Location, a []Location, or a []LocationLink.
func firstLocation(result gjson.Result) (Result, bool) {
	if result.IsArray() {
		arr := result.Array()
		if len(arr) == 0 {
			return Result{}, false
		}
		result = arr[0]
	}

	uri := result.Get("uri")
	rng := result.Get("range")
	if !uri.Exists() {
		// LocationLink shape.
		uri = result.Get("targetUri")
		rng = result.Get("targetSelectionRange")
	}
	if !uri.Exists() || !rng.Exists() {
		return Result{}, false
	}
	start := rng.Get("start")
	if !start.Get("line").Exists() {
		return Result{}, false
	}
	return Result{
		URI:  DocumentURI(uri.String()),
		Line: int(start.Get("line").Int()),
		Col:  int(start.Get("character").Int()),
	}, true
}
