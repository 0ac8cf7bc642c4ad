package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/logger"
	"github.com/frankchang1000/csv2geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string `short:"i" long:"in"        description:"Document produced by csv2geojson (.geojson, .json, .yaml)" required:"true"`
	Format    string `short:"f" long:"format"    description:"Summary format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Unproject bool   `short:"u" long:"unproject" description:"Report a Web Mercator bounding box in lon/lat"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	fc, err := processor.LoadGeoJSON(opts.Input)
	if err != nil {
		log.Error().Err(err).Str("path", opts.Input).Msg("Failed to load document")
		os.Exit(failure.KindOf(err).ExitCode())
	}

	summary := processor.Summarize(fc, opts.Unproject)

	switch opts.Format {
	case "json":
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal summary")
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(summary)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal summary")
		}
		fmt.Print(string(data))
	default:
		fmt.Println(summary.String())
	}
}
