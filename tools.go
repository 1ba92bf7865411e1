//go:build tools

package tools

import (
	_ "github.com/99designs/gqlgen"
	_ "go.uber.org/mock/mockgen"
)
