// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats command results for terminals, scripts and JSON consumers.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const columnGap = 2

// OutputState holds output configuration for one command invocation.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool

	Out io.Writer
	Err io.Writer
}

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// IsTTY checks if the writer is a terminal (not piped/redirected).
func (o *OutputState) IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// Check no-color.org standards
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(o.out()) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		_, _ = fmt.Fprintf(o.err(), format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr (always visible).
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain || o.JSON {
		_, _ = fmt.Fprintf(o.err(), "warning: "+format+"\n", args...)
	} else {
		_, _ = fmt.Fprintf(o.err(), "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain || o.JSON {
		_, _ = fmt.Fprintf(o.err(), "error: "+format+"\n", args...)
	} else {
		_, _ = fmt.Fprintf(o.err(), "✗ "+format+"\n", args...)
	}
}

// Result writes command results to stdout (machine-readable primary output).
func (o *OutputState) Result(data any) {
	_, _ = fmt.Fprintf(o.out(), "%v\n", data)
}

// JSONResult writes structured JSON results to stdout.
func (o *OutputState) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(o.out()).Encode(result); err != nil {
		// Best effort - output encoding errors shouldn't crash the program
		_, _ = fmt.Fprintf(o.err(), "error encoding JSON: %v\n", err)
	}
}

// SuccessResult outputs a result in the configured mode.
func (o *OutputState) SuccessResult(result any) {
	if o.JSON {
		o.JSONResult("success", map[string]any{"result": result})

		return
	}

	o.Result(result)
}

// ErrorResult reports an error; JSON mode also emits an error document on stdout.
func (o *OutputState) ErrorResult(err error, code int) {
	if o.JSON {
		o.JSONResult("error", map[string]any{
			"error": err.Error(),
			"code":  code,
		})
	}

	o.Errorf("%s", err.Error())
}

// PlainKeyValue outputs key:value pairs for machine parsing.
func (o *OutputState) PlainKeyValue(key, value string) {
	_, _ = fmt.Fprintf(o.out(), "%s:%s\n", key, value)
}

// Table writes rows with columns padded to their widest cell.
// Widths are measured in terminal cells so wide runes align.
func (o *OutputState) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))

	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	write := func(row []string, bold bool) {
		cells := make([]string, 0, len(row))

		for i, cell := range row {
			if i < len(row)-1 && i < len(widths) {
				cell = runewidth.FillRight(cell, widths[i]+columnGap)
			}

			cells = append(cells, cell)
		}

		line := strings.Join(cells, "")
		if bold {
			line = o.Bold(line)
		}

		_, _ = fmt.Fprintln(o.out(), strings.TrimRight(line, " "))
	}

	write(header, true)

	for _, row := range rows {
		write(row, false)
	}
}

func (o *OutputState) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}

	return o.Out
}

func (o *OutputState) err() io.Writer {
	if o.Err == nil {
		return os.Stderr
	}

	return o.Err
}
