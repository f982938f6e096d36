package http

import "errors"

var (
	ErrInvalidJSON     = errors.New("invalid JSON body")
	ErrInvalidPathID   = errors.New("id in path must be a positive integer")
	ErrInvalidQueryArg = errors.New("invalid query parameter")
)
