package domain

import "errors"

var ErrEmptyMessage = errors.New("empty message")
