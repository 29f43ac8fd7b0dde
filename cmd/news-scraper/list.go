package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	keys := deps.Registry.List()
	if len(keys) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Available news sites:")
	for _, key := range keys {
		cfg, err := deps.Registry.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s: %s\n", key, cfg.Name)
	}

	return nil
}
