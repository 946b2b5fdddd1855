package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"shiplate/internal/shipment"
	"shiplate/internal/stats"

	"github.com/rs/zerolog/log"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeParseError     = -32700
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Options configures a Server.
type Options struct {
	Version      string
	TopLateLimit int
	// Load reads an export by path; defaults to shipment.LoadFile.
	Load func(path string) (string, error)
	// Now supplies the default reference date; defaults to time.Now.
	Now func() time.Time
}

// Server answers tool calls over newline-delimited JSON-RPC.
type Server struct {
	in   io.Reader
	out  io.Writer
	opts Options
}

// NewServer creates a new MCP server reading requests from in and writing responses to out.
func NewServer(in io.Reader, out io.Writer, opts Options) *Server {
	if opts.Load == nil {
		opts.Load = shipment.LoadFile
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TopLateLimit <= 0 {
		opts.TopLateLimit = stats.DefaultTopLateLimit
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{in: in, out: out, opts: opts}
}

// Serve runs the request loop until the input closes.
func (s *Server) Serve() error {
	reader := bufio.NewReader(s.in)
	for {
		line, err := reader.ReadBytes('\n')
		if len(strings.TrimSpace(string(line))) > 0 {
			s.handleLine(line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handleLine(line []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal request")
		s.write(JSONRPCResponse{
			JSONRPC: "2.0",
			Error:   rpcError(codeParseError, "Parse error"),
		})
		return
	}

	// Notifications get no response.
	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		log.Debug().Str("method", req.Method).Msg("Notification received")
		return
	}

	s.write(s.handleRequest(req))
}

func (s *Server) handleRequest(req JSONRPCRequest) JSONRPCResponse {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "shiplate",
				"version": s.opts.Version,
			},
		}
	case "ping":
		result = map[string]interface{}{}
	case "tools/list":
		result, errRes = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = rpcError(codeMethodNotFound, fmt.Sprintf("Method %s not found", req.Method))
	}

	return JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}
}

func (s *Server) write(resp JSONRPCResponse) {
	out, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal response")
		return
	}
	fmt.Fprintf(s.out, "%s\n", out)
}

func rpcError(code int, message string) map[string]interface{} {
	return map[string]interface{}{"code": code, "message": message}
}
