package payers

import "errors"

// ErrInvalidAssetPath indicates an asset name that escapes the asset root.
var ErrInvalidAssetPath = errors.New("asset name contains invalid path segment")
