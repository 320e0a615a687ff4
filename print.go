package fiesta

import (
	"fmt"
	"io"
	"os"
)

// Fprint writes v's diagnostic form to w.
func Fprint(w io.Writer, v fmt.Stringer) (int, error) {
	return io.WriteString(w, v.String())
}

func Fprintln(w io.Writer, v fmt.Stringer) (int, error) {
	return fmt.Fprintln(w, v.String())
}

func Print(v fmt.Stringer) (int, error) { return Fprint(os.Stdout, v) }
func Println(v fmt.Stringer) (int, error) { return Fprintln(os.Stdout, v) }
