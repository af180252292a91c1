package handler

import "errors"

// ErrNilACD is returned by Init if app, cfg, db or guard is nil.
var ErrNilACD = errors.New("app, cfg, db or guard is nil")

// ErrInvalidID is returned for path ids that are not positive integers.
var ErrInvalidID = errors.New("invalid id")
