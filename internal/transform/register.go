package transform

import (
	"fmt"

	"refactor/internal/command"
)

// RegisterCommands adds every transform in this package to the registry.
func RegisterCommands(reg *command.Registry) {
	reg.Register("reorganize_namespaces", func(args []string) (command.Transform, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("reorganize_namespaces takes no arguments")
		}
		return ReorganizeNamespaces{}, nil
	})
}
