// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Describe prints the header fields and a line per track as a
// SIZE/NAME/VALUE table.
func (f *File) Describe(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SIZE\tNAME\tVALUE")
	fmt.Fprintf(tw, "4\tchunk_id\t%s\n", f.Header.ChunkID[:])
	fmt.Fprintf(tw, "4\tchunk_size\t%d\n", f.Header.ChunkSize)
	fmt.Fprintf(tw, "2\tformat\t%d\n", f.Header.Format)
	fmt.Fprintf(tw, "2\ttracks\t%d\n", f.Header.Tracks)
	fmt.Fprintf(tw, "2\tdivision\t%d\n", f.Header.Division)

	for i, t := range f.tracks {
		size := t.Size
		if !t.finalized {
			size = uint32(t.Len())
		}
		fmt.Fprintf(tw, "4\ttrack[%d].chunk_id\t%s\n", i, t.ChunkID[:])
		fmt.Fprintf(tw, "4\ttrack[%d].size\t%d\n", i, size)
	}

	return tw.Flush()
}
