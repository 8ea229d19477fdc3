package auth

import "errors"

var (
	MissingCredentialsErr = errors.New("email and password are required")
	EmptyLoginResponseErr = errors.New("login response carried no access token")
)
