// Package spool stages a fully materialized byte stream so it can be
// replayed as the standard input of a subprocess.
//
// Filter mode reads stdin to completion before the target program starts,
// so the decoded stream needs a staging area. Small streams stay in
// memory; larger ones (or an explicit file backend) spill to a temp file
// that is removed on every exit path via Cleanup.
package spool

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdexec/pdexec/internal/config"
)

// Spool accumulates writes and hands the result back as a reader.
// The zero value is not usable; call New.
type Spool struct {
	backend     string
	memoryLimit int
	buf         bytes.Buffer
	file        *os.File
}

// New returns an empty spool. backend is one of the config.Spool*
// constants; memoryLimit is the spill threshold for the auto backend.
func New(backend string, memoryLimit int) *Spool {
	return &Spool{backend: backend, memoryLimit: memoryLimit}
}

// Write implements io.Writer.
func (s *Spool) Write(p []byte) (int, error) {
	if s.file == nil && s.backend == config.SpoolFile {
		if err := s.spill(); err != nil {
			return 0, err
		}
	}
	if s.file != nil {
		return s.file.Write(p)
	}
	n, err := s.buf.Write(p)
	if err != nil {
		return n, err
	}
	if s.backend == config.SpoolAuto && s.buf.Len() > s.memoryLimit {
		if err := s.spill(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// spill moves the in-memory buffer to a temp file and redirects further
// writes there.
func (s *Spool) spill() error {
	f, err := os.CreateTemp("", "pdexec-stdin-*")
	if err != nil {
		return fmt.Errorf("create stdin spool file: %w", err)
	}
	if _, err := f.Write(s.buf.Bytes()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write stdin spool file: %w", err)
	}
	s.buf.Reset()
	s.file = f
	return nil
}

// Len reports the number of bytes spooled so far.
func (s *Spool) Len() (int64, error) {
	if s.file != nil {
		info, err := s.file.Stat()
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}
	return int64(s.buf.Len()), nil
}

// Reader returns a reader over everything written so far. No further
// writes may happen after Reader is called.
func (s *Spool) Reader() (io.Reader, error) {
	if s.file != nil {
		if _, err := s.file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind stdin spool file: %w", err)
		}
		return s.file, nil
	}
	return bytes.NewReader(s.buf.Bytes()), nil
}

// Cleanup releases the temp file, if any. Safe to call more than once
// and safe when nothing ever spilled.
func (s *Spool) Cleanup() error {
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	closeErr := s.file.Close()
	removeErr := os.Remove(name)
	s.file = nil
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}
