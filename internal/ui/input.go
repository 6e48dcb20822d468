// Package ui owns the terminal surface: keyboard input decoding and the
// machine/statistics renderers. It consumes engine snapshots and history
// copies only and never mutates game state.
package ui

import "io"

// Key is a decoded keyboard action.
type Key int

const (
	KeySpace Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyQuit
)

// ReadKeys decodes raw terminal bytes into Key events on the returned
// channel. It expects the terminal to be in raw mode and exits (closing the
// channel) when the reader does. Arrow keys arrive as CSI sequences.
func ReadKeys(r io.Reader) <-chan Key {
	keys := make(chan Key, 8)
	go func() {
		defer close(keys)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				switch buf[i] {
				case ' ':
					keys <- KeySpace
				case '\t':
					keys <- KeyTab
				case 'q', 'Q', 0x03: // q or Ctrl-C
					keys <- KeyQuit
				case 0x1b:
					if i+2 < n && buf[i+1] == '[' {
						switch buf[i+2] {
						case 'A':
							keys <- KeyUp
						case 'B':
							keys <- KeyDown
						case 'C':
							keys <- KeyRight
						case 'D':
							keys <- KeyLeft
						}
						i += 2
					}
				}
			}
		}
	}()
	return keys
}
