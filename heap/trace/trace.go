// Package trace parses and replays allocation traces: flat text files of
// alloc/free operations used to benchmark and correctness-check an
// allocator. The format is line oriented:
//
//	# comment
//	a <id> <size>    allocate <size> bytes and bind the block to <id>
//	f <id>           free the block bound to <id>
//
// IDs are small non-negative integers chosen by the trace author; a trace
// must not allocate an ID that is live or free one that is not.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Kind discriminates trace operations.
type Kind uint8

const (
	// OpAlloc allocates a block and binds it to the op's ID.
	OpAlloc Kind = iota + 1
	// OpFree releases the block bound to the op's ID.
	OpFree
)

// Op is a single trace operation.
type Op struct {
	Kind Kind
	ID   int
	Size int64 // allocation size; zero for OpFree
	Line int   // 1-based source line, for error reporting
}

// Trace is a parsed operation sequence.
type Trace struct {
	Ops   []Op
	MaxID int
}

// Parse reads a trace from r. Errors carry the offending line number.
func Parse(r io.Reader) (*Trace, error) {
	t := &Trace{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		switch fields[0] {
		case "a":
			if len(fields) != 3 {
				return nil, fmt.Errorf("trace: line %d: want %q, got %q", line, "a <id> <size>", text)
			}
			id, err := parseID(fields[1])
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: %w", line, err)
			}
			size, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil || size <= 0 {
				return nil, fmt.Errorf("trace: line %d: bad size %q", line, fields[2])
			}
			t.add(Op{Kind: OpAlloc, ID: id, Size: size, Line: line})

		case "f":
			if len(fields) != 2 {
				return nil, fmt.Errorf("trace: line %d: want %q, got %q", line, "f <id>", text)
			}
			id, err := parseID(fields[1])
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: %w", line, err)
			}
			t.add(Op{Kind: OpFree, ID: id, Line: line})

		default:
			return nil, fmt.Errorf("trace: line %d: unknown op %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return t, nil
}

// ParseFile reads a trace from the file at path.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (t *Trace) add(op Op) {
	if op.ID > t.MaxID {
		t.MaxID = op.ID
	}
	t.Ops = append(t.Ops, op)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return id, nil
}
