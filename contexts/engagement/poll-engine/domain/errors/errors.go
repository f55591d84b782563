package errors

import "errors"

var (
	ErrInvalidPollInput = errors.New("invalid poll input")
	ErrPollNotFound     = errors.New("poll not found")
	ErrPollExpired      = errors.New("poll has expired")
	ErrDuplicateVote    = errors.New("vote already recorded for this poll")
	ErrInvalidOption    = errors.New("invalid option")
)
