package protocol

import (
	"io"
	"strconv"
	"strings"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// WriteOK writes "OK\n" + body (newline-terminated) + "END\n", mirroring
// original_source's send_response(fd, body, true).
func WriteOK(w io.Writer, body string) error {
	return writeFramed(w, "OK\n", body)
}

// WriteErr writes "ERR\n" + body + "END\n".
func WriteErr(w io.Writer, body string) error {
	return writeFramed(w, "ERR\n", body)
}

func writeFramed(w io.Writer, status, body string) error {
	var b strings.Builder
	b.WriteString(status)
	b.WriteString(body)
	if body == "" || body[len(body)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString("END\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// SerializeGraphEdges renders a PREVIEW response body: a GRAPH V E header
// line followed by one EDGE u v w line per edge. Ported from
// original_source's serialize_graph_edges.
func SerializeGraphEdges(g *graph.Graph) string {
	capm := g.Capacity()
	v := g.Vertices()
	directed := g.Directed()

	var b strings.Builder
	count := 0
	if directed {
		for u := 0; u < v; u++ {
			for w := 0; w < v; w++ {
				if capm[u][w] > 0 {
					count++
				}
			}
		}
	} else {
		for u := 0; u < v; u++ {
			for w := u + 1; w < v; w++ {
				if capm[u][w] > 0 || capm[w][u] > 0 {
					count++
				}
			}
		}
	}

	b.WriteString("GRAPH ")
	b.WriteString(strconv.Itoa(v))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(count))
	b.WriteByte('\n')

	if directed {
		for u := 0; u < v; u++ {
			for w := 0; w < v; w++ {
				if capm[u][w] > 0 {
					writeEdgeLine(&b, u, w, capm[u][w])
				}
			}
		}
	} else {
		for u := 0; u < v; u++ {
			for w := u + 1; w < v; w++ {
				weight := max(capm[u][w], capm[w][u])
				if weight > 0 {
					writeEdgeLine(&b, u, w, weight)
				}
			}
		}
	}
	return b.String()
}

func writeEdgeLine(b *strings.Builder, u, v, w int) {
	b.WriteString("EDGE ")
	b.WriteString(strconv.Itoa(u))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(v))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(w))
	b.WriteByte('\n')
}
