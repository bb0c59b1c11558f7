package designation

import "errors"

var (
	ErrDesignationNotFound    = errors.New("designation not found")
	ErrDesignationTitleExists = errors.New("designation title already exists")
	ErrDesignationsNotFound   = errors.New("designations not found")
	ErrDesignationInUse       = errors.New("designation has assigned employees")
)
