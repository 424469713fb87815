package main

import "errors"

var (
	errUnknownDriver = errors.New("unknown storage driver")
	errReservedName  = errors.New("cookie name is reserved")
	errInvalidBody   = errors.New("invalid request body")
	errRejected      = errors.New("cookie was rejected by the document")
)
