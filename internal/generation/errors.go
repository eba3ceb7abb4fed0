package generation

import "errors"

// ErrBatchSize indicates a requested record count outside MinBatchSize..MaxBatchSize.
var ErrBatchSize = errors.New("batch size out of range")
