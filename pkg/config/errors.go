package config

import "errors"

var (
	ErrReadFile = errors.New("config: failed to read dotenv file")
	ErrParse    = errors.New("config: failed to parse environment")
)
