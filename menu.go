package paindetect

import (
	"fmt"
	"io"
)

// Menu lists the filter key bindings.
const Menu = `*********************************************
*      V I D E O  S T R E A M  M E N U      *
*********************************************
* - remember to press and hold the buttons  *
*                                           *
* -- b -- gaussian blur                     *
* -- c -- canny                             *
* -- g -- gray                              *
* -- s -- shift colors                      *
* -- r -- remove colors                     *
* -- d -- 3D                                *
* -- f -- flip                              *
* -- esc -- quit                            *
*********************************************
`

// PrintMenu writes the key bindings menu to w.
func PrintMenu(w io.Writer) error {
	_, err := fmt.Fprint(w, Menu)
	return err
}
