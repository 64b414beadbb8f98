package partition

import "errors"

// ErrEmptyDataset is returned by Randomize when no positions have been
// loaded yet.
var ErrEmptyDataset = errors.New("partition: no positions loaded")
