package model

import "github.com/m-mizutani/goerr/v2"

// Error tags used to classify a failed run
var (
	ErrTagConfig     = goerr.NewTag("config")
	ErrTagConnection = goerr.NewTag("connection")
	ErrTagQuery      = goerr.NewTag("query")
	ErrTagWrite      = goerr.NewTag("write")
	ErrTagPublish    = goerr.NewTag("publish")
)
