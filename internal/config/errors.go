package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrWildcardOrigin error if the CORS origin is a wildcard. Credentials are
	// allowed on CORS requests, which browsers refuse together with "*".
	ErrWildcardOrigin = errors.New("toml config webserver.frontendurl can not be a wildcard")
)
