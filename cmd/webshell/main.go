package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/webshell-go/webshell/config"
	"github.com/webshell-go/webshell/internal/util"
	"github.com/webshell-go/webshell/requests"
	"github.com/webshell-go/webshell/shell"
	"github.com/webshell-go/webshell/vfs"
)

func main() {
	var (
		configPath string
		nodesDef   string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to an extra nodes def file applied after the seed")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.IntVar(&verbose, "verbose", 0, "Log verbosity level between 1 (error) and 5 (trace). Overrides the config file.")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	// Config file first, then the verbosity flag on top
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.NewConfigFromFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if verbose != 0 {
		cfg.LogLvl = config.LevelFromVerbosity(verbose)
	}

	util.InitializeLogger(cfg.LogLvl, os.Stderr)
	logger := util.GetLogger("main")
	logger.Info().Str("config", configPath).Str("nodes", nodesDef).Msg("webshell initializing")

	fs := vfs.New()
	if err := vfs.Seed(fs); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed filesystem")
	}

	if nodesDef != "" {
		reqs, err := requests.LoadNodesFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to load nodes file")
		}
		dirCnt := 0
		for _, req := range reqs.Dirs {
			if _, err := fs.AddDirNode(req); err != nil {
				logger.Error().Err(err).Str("path", req.Path).Msg("Failed to add directory request")
				continue
			}
			dirCnt++
		}
		fileCnt := 0
		for _, req := range reqs.Files {
			if _, err := fs.AddFileNode(req); err != nil {
				logger.Error().Err(err).Str("path", req.Path).Msg("Failed to add file request")
				continue
			}
			fileCnt++
		}
		logger.Info().Int("directories", dirCnt).Int("files", fileCnt).Msg("Added nodes from definition file")
	}

	if cfg.HomePath != config.DefaultHomePath {
		if err := fs.SetHome(cfg.HomePath); err != nil {
			logger.Warn().Err(err).Str("home", cfg.HomePath).Msg("Configured home does not resolve, keeping seed home")
		} else if err := fs.NavigateTo(""); err != nil {
			logger.Warn().Err(err).Msg("Failed to enter home directory")
		}
	}

	sess := shell.NewSession(fs, cfg)
	scanner := bufio.NewScanner(os.Stdin)
	for !sess.Done() {
		fmt.Print(sess.Prompt())
		if !scanner.Scan() {
			break
		}
		res := sess.Eval(scanner.Text())
		if res.Out != "" {
			fmt.Println(res.Out)
		}
		if res.Err != "" {
			fmt.Println(res.Err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("Input error")
	}
	logger.Info().Msg("Session ended")
}
