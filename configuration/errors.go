package configuration

import "github.com/thanhminhmr/go-errtrace/exception"

const (
	errorReadFile  = exception.String("Configuration: Failed to read file")
	errorParseFile = exception.String("Configuration: Failed to parse file")
	errorDecode    = exception.String("Configuration: Failed to decode")
	errorValidate  = exception.String("Configuration: Failed to validate")
)
