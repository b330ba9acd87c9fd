// Package protocol implements the line-oriented request parser and the
// framed response writer described by the wire protocol. Grounded on
// original_source/part_9/apps/server.cpp's inline parser (the directive
// switch inside handle_client) and send_response, restructured in the
// teacher's internal/http10 style of separating parsing from writing into
// dedicated files — but for a line protocol, not HTTP.
package protocol

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// VSafeMax bounds the vertex count to avoid pathological memory/CPU use.
const VSafeMax = 20000

// Edge is an explicit edge directive (EDGE u v [w]).
type Edge struct {
	U, V, W int
}

// Request is the fully parsed directive set for one client request.
type Request struct {
	Alg      string
	Directed bool
	Random   bool
	V        int
	E        int
	Seed     int
	WMin     int
	WMax     int
	Edges    []Edge
	Params   map[string]int

	// Exit/Shutdown are recognized before line-by-line parsing even starts;
	// see ClassifyFrame.
	Exit     bool
	Shutdown bool
}

// ParseError is returned for any malformed or invalid directive; its Error()
// is exactly the message the wire protocol sends back to the client.
type ParseError struct{ msg string }

func (e *ParseError) Error() string { return e.msg }

// NewParseError builds a ParseError with the given client-facing message,
// for validation failures detected outside Parse itself (e.g. by the
// connection handler when constructing the graph).
func NewParseError(msg string) error {
	return &ParseError{msg: msg}
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// ClassifyFrame inspects a raw accumulated request buffer (as delivered by
// ReadFrame) and reports whether it is an EXIT or SHUTDOWN control frame
// rather than an algorithm request.
func ClassifyFrame(raw string) (exit, shutdown bool) {
	if raw == "EXIT\n" || strings.Contains(raw, "\nEXIT\n") {
		return true, false
	}
	if raw == "SHUTDOWN\n" || strings.Contains(raw, "\nSHUTDOWN\n") {
		return false, true
	}
	return false, false
}

// ReadFrame accumulates lines from r until a line that is exactly END, EXIT,
// or SHUTDOWN is seen, returning the buffer including that terminator line.
// It mirrors original_source's recv_all_lines but reads whole lines instead
// of raw chunks, which is idiomatic for bufio.Reader and has the same
// termination semantics since the terminator is always line-aligned.
func ReadFrame(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			b.WriteString(line)
		}
		if err != nil {
			if b.Len() == 0 {
				return "", err
			}
			// EOF right after a final END line that lacks its newline
			// still completes the frame. Any other unterminated buffer is
			// a truncated request: like the original's recv()==0 case, it
			// is reported as the read error and the request is dropped.
			if strings.TrimSuffix(line, "\r") == "END" {
				return b.String(), nil
			}
			return "", err
		}
		trimmed := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		switch trimmed {
		case "END", "EXIT", "SHUTDOWN":
			return b.String(), nil
		}
	}
}

// Parse interprets a request buffer's directive lines up to (and not
// including) the terminating END line.
func Parse(raw string) (*Request, error) {
	req := &Request{WMin: 1, WMax: 1, Seed: 42, Params: map[string]int{}}
	src, sink, k := -1, -1, -1

	lines := strings.Split(raw, "\n")
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "END" {
			break
		}
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "ALG "):
			fields := strings.Fields(line[len("ALG "):])
			if len(fields) == 0 {
				return nil, parseErrorf("Unknown directive: %s", line)
			}
			req.Alg = fields[0]
			// Trailing "DIRECTED <0|1>" tokens, kept for backward compatibility.
			for i := 1; i+1 < len(fields); i++ {
				if fields[i] == "DIRECTED" {
					if v, err := strconv.Atoi(fields[i+1]); err == nil {
						req.Directed = v != 0
					}
				}
			}
		case strings.HasPrefix(line, "DIRECTED "):
			v, err := parseIntField(line, "DIRECTED ")
			if err != nil {
				return nil, err
			}
			req.Directed = v != 0
		case strings.HasPrefix(line, "RANDOM "):
			v, err := parseIntField(line, "RANDOM ")
			if err != nil {
				return nil, err
			}
			req.Random = v != 0
		case strings.HasPrefix(line, "V "):
			v, err := parseIntField(line, "V ")
			if err != nil {
				return nil, err
			}
			req.V = v
		case strings.HasPrefix(line, "E "):
			v, err := parseIntField(line, "E ")
			if err != nil {
				return nil, err
			}
			req.E = v
		case strings.HasPrefix(line, "SEED "):
			v, err := parseIntField(line, "SEED ")
			if err != nil {
				return nil, err
			}
			req.Seed = v
		case strings.HasPrefix(line, "WMIN "):
			v, err := parseIntField(line, "WMIN ")
			if err != nil {
				return nil, err
			}
			req.WMin = v
		case strings.HasPrefix(line, "WMAX "):
			v, err := parseIntField(line, "WMAX ")
			if err != nil {
				return nil, err
			}
			req.WMax = v
		case strings.HasPrefix(line, "EDGE "):
			fields := strings.Fields(line[len("EDGE "):])
			if len(fields) < 2 {
				return nil, parseErrorf("Unknown directive: %s", line)
			}
			u, errU := strconv.Atoi(fields[0])
			v, errV := strconv.Atoi(fields[1])
			if errU != nil || errV != nil {
				return nil, parseErrorf("Unknown directive: %s", line)
			}
			w := 1
			if len(fields) >= 3 {
				wv, errW := strconv.Atoi(fields[2])
				if errW != nil {
					return nil, parseErrorf("Unknown directive: %s", line)
				}
				w = wv
			}
			req.Edges = append(req.Edges, Edge{U: u, V: v, W: w})
		case strings.HasPrefix(line, "PARAM "):
			fields := strings.Fields(line[len("PARAM "):])
			if len(fields) != 2 {
				return nil, parseErrorf("Unknown directive: %s", line)
			}
			val, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, parseErrorf("Unknown directive: %s", line)
			}
			switch fields[0] {
			case "SRC":
				src = val
			case "SINK":
				sink = val
			case "K":
				k = val
			default:
				return nil, parseErrorf("Unknown directive: %s", line)
			}
		default:
			return nil, parseErrorf("Unknown directive: %s", line)
		}
	}

	if src >= 0 {
		req.Params["SRC"] = src
	}
	if sink >= 0 {
		req.Params["SINK"] = sink
	}
	if k >= 0 {
		req.Params["K"] = k
	}
	return req, nil
}

func parseIntField(line, prefix string) (int, error) {
	fields := strings.Fields(line[len(prefix):])
	if len(fields) == 0 {
		return 0, parseErrorf("Unknown directive: %s", line)
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, parseErrorf("Unknown directive: %s", line)
	}
	return v, nil
}

// ClampEdgeCount bounds a RANDOM=1 request's edge count to what the graph can
// actually hold, mirroring the original's maxE clamp.
func ClampEdgeCount(v, e int, directed bool) int {
	maxE := v * (v - 1) / 2
	if directed {
		maxE = v * (v - 1)
	}
	if e > maxE {
		e = maxE
	}
	if e < 0 {
		e = 0
	}
	return e
}

// NormalizeWeightRange swaps wmin/wmax if inverted, mirroring the original's
// std::swap(wmax, wmin) guard.
func NormalizeWeightRange(wmin, wmax int) (int, int) {
	if wmax < wmin {
		return wmax, wmin
	}
	return wmin, wmax
}
