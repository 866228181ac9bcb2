package dot

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// statement is one ';'-terminated piece of the graph body
type statement struct {
	index int
	text  string
}

type edgeDecl struct {
	from, to uint64
	stmt     statement
}

// Parse reads the restricted DOT digraph syntax used for flow charts:
//
//	digraph [name] {
//	  <id> [label="<text>"];
//	  <id> -> <id>;
//	}
//
// Comments, subgraphs and edge attributes are not supported. Vertex statements
// may carry attributes besides label; they are ignored. Any deviation yields a
// *ParseError and no graph.
func Parse(src string) (*Graph, error) {
	body, err := extractBody(src)
	if err != nil {
		return nil, err
	}

	stmts, err := splitStatements(body)
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	var edges []edgeDecl

	for _, stmt := range stmts {
		if head, tail, ok := cutOutsideQuotes(stmt.text, "->"); ok {
			from, err := parseID(head)
			if err != nil {
				return nil, stmtError(stmt, "invalid edge source", err)
			}
			to, err := parseID(tail)
			if err != nil {
				return nil, stmtError(stmt, "invalid edge target", err)
			}
			edges = append(edges, edgeDecl{from: from, to: to, stmt: stmt})
			continue
		}

		id, label, err := parseVertex(stmt)
		if err != nil {
			return nil, err
		}
		if err := g.AddVertex(id, label); err != nil {
			return nil, stmtError(stmt, "invalid vertex", err)
		}
	}

	// Edges may precede the vertices they reference, so resolve them last
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to); err != nil {
			return nil, stmtError(e.stmt, "invalid edge", err)
		}
	}

	return g, nil
}

// ParseReader reads the whole reader and parses it
func ParseReader(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read DOT: %w", err)
	}
	return Parse(string(data))
}

func extractBody(src string) (string, error) {
	openIdx := strings.Index(src, "{")
	if openIdx < 0 {
		return "", &ParseError{Reason: "missing opening brace"}
	}
	header := strings.Fields(src[:openIdx])
	if len(header) == 0 || header[0] != "digraph" || len(header) > 2 {
		return "", &ParseError{Reason: fmt.Sprintf("expected 'digraph [name] {', got %q", strings.TrimSpace(src[:openIdx]))}
	}

	closeIdx := lastIndexOutsideQuotes(src, '}')
	if closeIdx < openIdx {
		return "", &ParseError{Reason: "missing closing brace"}
	}
	if rest := strings.TrimSpace(src[closeIdx+1:]); rest != "" {
		return "", &ParseError{Reason: fmt.Sprintf("unexpected content after closing brace: %q", rest)}
	}
	return src[openIdx+1 : closeIdx], nil
}

// splitStatements splits on ';' outside double quotes. Whitespace-only pieces
// are skipped; a non-empty trailing piece without ';' is an error.
func splitStatements(body string) ([]statement, error) {
	var (
		stmts    []statement
		current  strings.Builder
		inQuotes bool
		escaped  bool
		index    int
	)

	for _, r := range body {
		switch {
		case escaped:
			escaped = false
		case inQuotes && r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ';' && !inQuotes:
			if text := strings.TrimSpace(current.String()); text != "" {
				index++
				stmts = append(stmts, statement{index: index, text: text})
			}
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	if inQuotes {
		return nil, &ParseError{Reason: "unterminated quoted string"}
	}
	if text := strings.TrimSpace(current.String()); text != "" {
		return nil, stmtError(statement{index: index + 1, text: text}, "statement is not terminated by ';'", nil)
	}
	return stmts, nil
}

func parseVertex(stmt statement) (uint64, string, error) {
	open := strings.Index(stmt.text, "[")
	if open < 0 {
		return 0, "", stmtError(stmt, "vertex has no attribute list", nil)
	}
	id, err := parseID(stmt.text[:open])
	if err != nil {
		return 0, "", stmtError(stmt, "invalid vertex id", err)
	}

	attrs := strings.TrimSpace(stmt.text[open+1:])
	if !strings.HasSuffix(attrs, "]") {
		return 0, "", stmtError(stmt, "unterminated attribute list", nil)
	}
	attrs = strings.TrimSuffix(attrs, "]")

	label, ok, err := findLabel(attrs)
	if err != nil {
		return 0, "", stmtError(stmt, "invalid label", err)
	}
	if !ok {
		return 0, "", stmtError(stmt, "missing label", nil)
	}
	return id, label, nil
}

// findLabel scans key=value attribute pairs and returns the unquoted label
func findLabel(attrs string) (string, bool, error) {
	rest := attrs
	for {
		rest = strings.TrimLeft(rest, " \t\r\n,")
		if rest == "" {
			return "", false, nil
		}

		eq := strings.Index(rest, "=")
		if eq < 0 {
			return "", false, fmt.Errorf("attribute %q has no value", rest)
		}
		key := strings.TrimSpace(rest[:eq])
		rest = strings.TrimLeft(rest[eq+1:], " \t\r\n")

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := closingQuote(rest)
			if end < 0 {
				return "", false, fmt.Errorf("unterminated value for %q", key)
			}
			unquoted, err := strconv.Unquote(rest[:end+1])
			if err != nil {
				// DOT allows escapes Go does not know; keep the raw text in that case
				unquoted = strings.ReplaceAll(rest[1:end], `\"`, `"`)
			}
			value = unquoted
			rest = rest[end+1:]
		} else {
			end := strings.IndexAny(rest, " \t\r\n,")
			if end < 0 {
				end = len(rest)
			}
			value = rest[:end]
			rest = rest[end:]
		}

		if key == "label" {
			return value, true, nil
		}
	}
}

func parseID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty id")
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not a non-negative integer", s)
	}
	return id, nil
}

// closingQuote returns the index of the quote closing the string that starts at s[0]
func closingQuote(s string) int {
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return i
		}
	}
	return -1
}

// quoteScanner tracks whether a left-to-right scan is inside a quoted string.
// Backslash escapes only count inside quotes.
type quoteScanner struct {
	inQuotes bool
	escaped  bool
}

// step consumes c and reports whether it lies outside any quoted string
func (q *quoteScanner) step(c byte) bool {
	switch {
	case q.escaped:
		q.escaped = false
		return false
	case q.inQuotes && c == '\\':
		q.escaped = true
		return false
	case c == '"':
		q.inQuotes = !q.inQuotes
		return false
	}
	return !q.inQuotes
}

func cutOutsideQuotes(s, sep string) (string, string, bool) {
	var q quoteScanner
	for i := 0; i < len(s); i++ {
		if q.step(s[i]) && strings.HasPrefix(s[i:], sep) {
			return s[:i], s[i+len(sep):], true
		}
	}
	return s, "", false
}

func lastIndexOutsideQuotes(s string, c byte) int {
	last := -1
	var q quoteScanner
	for i := 0; i < len(s); i++ {
		if q.step(s[i]) && s[i] == c {
			last = i
		}
	}
	return last
}

func stmtError(stmt statement, reason string, cause error) *ParseError {
	return &ParseError{Statement: stmt.index, Text: stmt.text, Reason: reason, Cause: cause}
}
