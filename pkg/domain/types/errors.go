package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption     = goerr.New("invalid option")
	ErrInvalidTransition = goerr.New("invalid migration state transition")
	ErrInvalidResponse   = goerr.New("invalid response from registry")
	ErrUnauthorized      = goerr.New("unauthorized")
)
