package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/pagewright/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool `help:"Overwrite existing configuration file"`
	Scaffold bool `help:"Also create layout fragments and empty pages, posts and public trees"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(configPath(root), i.Force, i.Scaffold)
}

func RunInit(path string, force, scaffold bool) error {
	// Provide friendly user-facing messages on stdout.
	fmt.Println("Initializing pagewright project")
	fmt.Printf("Writing configuration to %s\n", path)
	if err := config.Init(path, force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	if scaffold {
		created, err := config.Scaffold(filepath.Dir(path))
		if err != nil {
			fmt.Println("Scaffolding failed")
			return err
		}
		for _, p := range created {
			fmt.Printf("Created %s\n", p)
		}
	}
	fmt.Println("initialized successfully")
	return nil
}
