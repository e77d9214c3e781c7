package view

import "errors"

var (
	ErrTemplateNotFound = errors.New("view: template not found")
	ErrPHPDirective     = errors.New("view: @php blocks are not supported")
	ErrSyntax           = errors.New("view: invalid template syntax")
	ErrExtendsDepth     = errors.New("view: layout chain too deep")
	ErrRenderFailed     = errors.New("view: failed to render template")
)
