package main

import (
	"log"
	"os"
	"path/filepath"

	"FormatKit/config"
	"FormatKit/fsutil"
)

const exampleDef = `// Example image definition, try: formatkit new example.def example.bmp
/* Values may be numbers or expressions
   over other keys. */
width    320
height   width * 3 / 4   // a negative height stores rows bottom-up
bpp      3               // bytes per pixel: 1, 3 or 4
pattern  gradient        // solid or gradient
fill     200
`

// RunBootstrap writes the default configuration to configPath and an
// example definition file next to it. Existing files are left alone.
func RunBootstrap(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		log.Printf("Configuration file '%s' already exists. Keeping it.", configPath)
	} else {
		if err := config.SaveConfig(configPath, config.Default()); err != nil {
			return err
		}
		log.Printf("Wrote default configuration to '%s'.", configPath)
	}

	examplePath := filepath.Join(dir, "example.def")
	if _, err := os.Stat(examplePath); err == nil {
		log.Printf("'%s' already exists. Keeping it.", examplePath)
		return nil
	}
	if err := fsutil.WriteFile(examplePath, []byte(exampleDef)); err != nil {
		return err
	}
	log.Printf("Wrote example definition to '%s'.", examplePath)
	return nil
}
