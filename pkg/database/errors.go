package database

import "errors"

// ErrNotReady reports that the pool has not completed its startup ping.
var ErrNotReady = errors.New("database not ready")
