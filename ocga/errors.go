package ocga

import "errors"

// ErrNoTitleNumber is returned when a source file name carries no title number.
var ErrNoTitleNumber = errors.New("no title number in file name")
