package fontstack

import "errors"

// ErrNoFamily is returned when none of a comma-separated family list
// resolves to a registered font.
var ErrNoFamily = errors.New("fontstack: no family in list resolved to a registered font")
