package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Loader reads programs in the LS-8 text format.
//
// Only the first whitespace-delimited token of each line is read. Blank
// lines and lines starting with '#' are skipped; every other token must be
// an 8-bit binary number. A malformed token does not stop the load: the
// line is recorded with an ErrParse, and its memory cell is left as it was.
type Loader struct {
	Verbose bool // If set, logs each loaded byte.
}

// Parse parses an input stream into a Program. The returned error is only
// for failures to read input; line errors are in the Program.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	prog = &Program{}

	var lineno int
	var addr int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		words := strings.Fields(text)
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}

		token := words[0]
		line := Line{
			LineNo:  lineno,
			Address: addr,
			Text:    strings.TrimSpace(text),
			Bytes:   []uint8{0},
		}

		value, perr := strconv.ParseUint(token, 2, 8)
		if perr != nil {
			line.Err = ErrParse{LineNo: lineno, Token: token}
			log.Printf("loader: %v", line.Err)
		} else {
			line.Bytes[0] = uint8(value)
			if ld.Verbose {
				log.Printf("loader: %02x: %08b", addr, value)
			}
		}

		prog.Lines = append(prog.Lines, line)
		addr += 1
	}

	err = scanner.Err()

	return
}
