package cli

import (
	"fmt"
	"io"
)

// printNotifier renders transient session notifications as console lines.
type printNotifier struct {
	w io.Writer
}

func (n *printNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "[ok] %s\n", msg)
}

func (n *printNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "[!] %s\n", msg)
}
