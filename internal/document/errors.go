package document

import (
	"errors"
	"fmt"
)

// ErrCancelled reports that an interactive flow (close confirmation, save-as
// picker) was aborted by the user. The enclosing operation leaves all state
// unchanged.
var ErrCancelled = errors.New("cancelled")

// ErrNoPath reports an operation that requires a backing file on an untitled
// document.
var ErrNoPath = errors.New("document has no file path")

type pathInUseError struct {
	path string
}

func (e pathInUseError) Error() string {
	return fmt.Sprintf("path already open in another document: %s", e.path)
}

func errPathInUse(path string) error {
	return pathInUseError{path: path}
}

// IsPathInUse reports whether err is the save-as collision error: the chosen
// destination path already backs a different open document.
func IsPathInUse(err error) bool {
	var e pathInUseError
	return errors.As(err, &e)
}
