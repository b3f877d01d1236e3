package script

import "errors"

// Script errors.
var (
	ErrPolicyClosed = errors.New("script: policy is closed")
	ErrNoFunction   = errors.New("script: policy does not define is_block_opener")
)
