package cli

import (
	"fmt"
)

type InitCmd struct{}

func (cmd *InitCmd) Run(ctx *Context) error {
	if err := ctx.Cache.Init(); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	fmt.Printf("Initialized cache at %s\n", ctx.Cache.GetConfigPath())
	return nil
}
