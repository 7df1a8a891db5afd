package io

import (
	"fmt"
	"io"
)

// Console writes CPU output to an io.Writer.
type Console struct {
	Output io.Writer

	Count int // Values written since the last rewind.
}

var _ Channel = (*Console)(nil)

// Rewind is not possible on a console; it only resets the counter.
func (con *Console) Rewind() {
	con.Count = 0
}

// Number writes the decimal text of value, followed by a newline.
func (con *Console) Number(value uint8) (err error) {
	if con.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	if err != nil {
		return
	}

	con.Count++

	return
}

// Char writes value as a raw byte.
func (con *Console) Char(value uint8) (err error) {
	if con.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = con.Output.Write([]byte{value})
	if err != nil {
		return
	}

	con.Count++

	return
}
