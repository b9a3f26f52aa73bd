// formatkit inspects, converts and creates BMP images and parses
// definition files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"FormatKit/config"
)

const usage = `usage: formatkit [flags] <command> [arguments]

commands:
  info <file.bmp>                   print the image headers
  convert <in.bmp> <out.bmp> [bpp]  rewrite an image, optionally at another depth
  new <file.def> <out.bmp>          create an image from a definition file
  tokens [-cp N] <file>             print the entries of a definition file
  walk [-r] <dir>                   list the files in a directory

flags:
`

func main() {
	configPath := flag.String("config", "formatkit.yml", "Configuration file")
	bootstrap := flag.Bool("bootstrap", false, "Write a default configuration and an example definition file, then exit")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *bootstrap {
		if err := RunBootstrap(*configPath); err != nil {
			log.Fatalf("Bootstrap failed: %v", err)
		}
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration '%s': %v", *configPath, err)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(os.Stdout, cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}
