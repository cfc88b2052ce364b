package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdexec/pdexec/internal/percent"
)

// decodeLines copies r to w, percent-decoding each LF-terminated line
// independently. The terminator is stripped before decoding and restored
// after, so escape sequences never span lines and a final unterminated
// line stays unterminated. maxLine bounds a single line's encoded length.
func decodeLines(r io.Reader, w io.Writer, maxLine int) error {
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			hadLF := line[len(line)-1] == '\n'
			if hadLF {
				line = line[:len(line)-1]
			}
			if maxLine > 0 && len(line) > maxLine {
				return fmt.Errorf("input line exceeds %d bytes", maxLine)
			}
			if _, werr := w.Write(percent.Decode(line)); werr != nil {
				return werr
			}
			if hadLF {
				if _, werr := w.Write([]byte{'\n'}); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
