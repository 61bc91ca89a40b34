// Package kb implements the corpus-to-frequency pipeline, the n-gram
// statistic registry and scoring engine, and the parallel simulated-
// annealing optimizer for 3x12 keyboard layouts.
package kb

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
)

// CloseFile closes a file and logs any error that occurs.
func CloseFile(file *os.File) {
	if err := file.Close(); err != nil {
		log.Printf("error closing file: %v", err)
	}
}

// MustFprint writes arguments to the given writer, logging and exiting on
// error. Simplifies error handling for fmt.Fprint calls where failures are
// critical and should halt execution.
func MustFprint(w io.Writer, args ...interface{}) {
	if _, err := fmt.Fprint(w, args...); err != nil {
		log.Fatalf("fprint failed: %v", err)
	}
}

// MustFprintln writes a newline-terminated string of arguments to the given
// writer, logging and exiting on error.
func MustFprintln(w io.Writer, args ...interface{}) {
	if _, err := fmt.Fprintln(w, args...); err != nil {
		log.Fatalf("fprintln failed: %v", err)
	}
}

// MustFprintf writes a formatted string to the given writer, logging and
// exiting on error.
func MustFprintf(w io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Fatalf("fprintf failed: %v", err)
	}
}

// FlushWriter flushes the buffered writer and logs any error that occurs.
func FlushWriter(writer *bufio.Writer) {
	if err := writer.Flush(); err != nil {
		log.Printf("error flushing writer: %v", err)
	}
}
