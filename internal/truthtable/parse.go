// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package truthtable reads truth tables in their textual format. The first
// line gives the names of the input variables followed by the name of the
// function; each following line gives one bit (0 or 1) per input followed by
// the output bit. Fields are separated by spaces or tabs, blank lines and lines
// starting with '#' are ignored.
//
//	a b c f
//	0 0 1 1
//	1 1 0 1
package truthtable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dalzilio/robdd"
)

// Parse reads a truth table from r. Errors due to the content of the table
// wrap robdd.ErrMalformedInput and give the line number.
func Parse(r io.Reader) (*robdd.Table, error) {
	scanner := bufio.NewScanner(r)
	var t *robdd.Table
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if t == nil {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: header needs at least one input and one output: %w", line, robdd.ErrMalformedInput)
			}
			t = &robdd.Table{
				Inputs: fields[:len(fields)-1],
				Output: fields[len(fields)-1],
			}
			continue
		}
		if len(fields) != len(t.Inputs)+1 {
			return nil, fmt.Errorf("line %d: %d columns, expected %d: %w", line, len(fields), len(t.Inputs)+1, robdd.ErrMalformedInput)
		}
		bits := make([]bool, len(fields))
		for k, f := range fields {
			switch f {
			case "0":
			case "1":
				bits[k] = true
			default:
				return nil, fmt.Errorf("line %d: column %d: %q is not a bit: %w", line, k+1, f, robdd.ErrMalformedInput)
			}
		}
		t.Rows = append(t.Rows, robdd.Row{Inputs: bits[:len(t.Inputs)], Output: bits[len(t.Inputs)]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading truth table: %w: %w", robdd.ErrIOFailure, err)
	}
	if t == nil {
		return nil, fmt.Errorf("no header in truth table: %w", robdd.ErrMalformedInput)
	}
	return t, nil
}

// ParseFile reads the truth table in the file called filename.
func ParseFile(filename string) (*robdd.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open truth table: %w: %w", robdd.ErrIOFailure, err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}
