package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"scene-demos/internal/commands"
	"scene-demos/internal/engineconfig"
	"scene-demos/internal/env"
	"scene-demos/internal/logger"
)

func main() {
	vars, envErr := env.Read(env.DefaultFile)
	prefs, cfgErr := engineconfig.Load(engineconfig.EngineConfigPath, env.Getenv(vars))
	log, err := logger.New(prefs.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: logger: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		log.Warn("env file ignored", zap.String("file", env.DefaultFile), zap.Error(envErr))
	}
	if cfgErr != nil {
		log.Warn("preferences not loaded, using defaults", zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	reg := newRegistry(ctx, prefs, log)
	err = reg.Execute(os.Args[1:])
	stop()

	code := 0
	switch {
	case errors.Is(err, commands.ErrUsage):
		reg.Usage(os.Stderr)
		code = 2
	case errors.Is(err, context.Canceled):
	case err != nil:
		log.Error("demo failed", zap.Error(err))
		code = 1
	}
	_ = log.Close()
	os.Exit(code)
}

// newRegistry registers one subcommand per demo.
func newRegistry(ctx context.Context, prefs engineconfig.EnginePrefs, log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry("demo")
	for _, d := range []struct{ name, summary string }{
		{"cubes", "three colored cubes and axes, rendered once on an 800x600 viewport"},
		{"lights", "lit sphere and plane with shadows, orbit controls and a debug panel"},
	} {
		var opts demoOptions
		fs := flag.NewFlagSet(d.name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.StringVar(&opts.scene, "scene", "", "scene file overriding the built-in one")
		fs.BoolVar(&opts.watch, "watch", false, "reload the -scene file when it changes")
		fs.BoolVar(&opts.gui, "gui", true, "show the debug panel")
		fs.StringVar(&opts.screenshot, "screenshot", "", "save the first rendered frame to this file and exit")
		name := d.name
		reg.Register(name, d.summary, fs, func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%s: unexpected arguments %v", name, args)
			}
			return runDemo(ctx, name, opts, prefs, log)
		})
	}
	return reg
}
