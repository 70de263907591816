// Package main provides the CLI entry point for vlogrender.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/autovlog/pkg/adapters/ffmpegmux"
	"github.com/user/autovlog/pkg/adapters/glcompositor"
	"github.com/user/autovlog/pkg/adapters/logger"
	"github.com/user/autovlog/pkg/adapters/osfilesystem"
	"github.com/user/autovlog/pkg/adapters/sessionstore"
	"github.com/user/autovlog/pkg/adapters/subtitle"
	"github.com/user/autovlog/pkg/adapters/yamlconfig"
	"github.com/user/autovlog/pkg/orchestrator"
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render/session"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:                 "vlogrender",
		Usage:                "Compose short-form vlog videos from a cover image and clips",
		Description:          "vlogrender renders a cover-image-plus-clips vlog as an incrementally built MP4, either in one shot or as a session you append to over time.",
		Version:              version,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "./templates", Usage: "Directory of global.yaml and template YAML files.", EnvVars: []string{"VLOGRENDER_CONFIG_DIR"}},
			&cli.StringFlag{Name: "sessions-dir", Value: "./sessions", Usage: "Directory where session state and segments are stored.", EnvVars: []string{"VLOGRENDER_SESSIONS_DIR"}},
			&cli.StringFlag{Name: "ffmpeg", Value: "ffmpeg", Usage: "Path to the ffmpeg executable.", EnvVars: []string{"VLOGRENDER_FFMPEG"}},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)."},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress all log output."},
		},
		Commands: []*cli.Command{
			renderCommand(),
			initCommand(),
			appendCommand(),
			finalizeCommand(),
			statusCommand(),
			templatesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a cover image and ordered clips into a finished video in one shot.",
		ArgsUsage: "CLIP [CLIP...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Required: true, Usage: "Template name."},
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Required: true, Usage: "Cover image path."},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output MP4 path (default: <sessions-dir>/<id>/final_<id>.mp4)."},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit(l10n.T("At least one clip is required."), 1)
			}

			svc, log, err := buildService(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(log)
			defer cancel()

			result, err := svc.Render(ctx, orchestrator.RenderRequest{
				TemplateName: c.String("template"),
				ImagePath:    c.String("image"),
				ClipPaths:    c.Args().Slice(),
				OutputPath:   c.String("output"),
			})
			if err != nil {
				return err
			}

			log.Info(l10n.F("Session %s complete: %s", result.SessionID, result.OutputPath))
			return nil
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Start a new session by rendering its cover-image segment.",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Required: true, Usage: "Template name."},
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Required: true, Usage: "Cover image path."},
		},
		Action: func(c *cli.Context) error {
			svc, log, err := buildService(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(log)
			defer cancel()

			result, err := svc.Init(ctx, orchestrator.InitRequest{
				TemplateName: c.String("template"),
				ImagePath:    c.String("image"),
			})
			if err != nil {
				return err
			}

			log.Info(l10n.F("Session started: %s", result.SessionID))
			fmt.Println(result.SessionID)
			return nil
		},
	}
}

func appendCommand() *cli.Command {
	return &cli.Command{
		Name:      "append",
		Usage:     "Append one clip segment to an existing session.",
		ArgsUsage: "SESSION_ID CLIP",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit(l10n.T("append requires a session id and a clip path."), 1)
			}

			svc, log, err := buildService(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(log)
			defer cancel()

			result, err := svc.Append(ctx, orchestrator.AppendRequest{
				SessionID: c.Args().Get(0),
				ClipPath:  c.Args().Get(1),
			})
			if err != nil {
				return err
			}

			log.Info(l10n.F("Appended segment %d", result.SegmentIndex))
			return nil
		},
	}
}

func finalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "finalize",
		Usage:     "Concatenate a session's segments and mux in its background track.",
		ArgsUsage: "SESSION_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output MP4 path (default: <sessions-dir>/<id>/final_<id>.mp4)."},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(l10n.T("finalize requires a session id."), 1)
			}

			svc, log, err := buildService(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(log)
			defer cancel()

			result, err := svc.Finalize(ctx, orchestrator.FinalizeRequest{
				SessionID:  c.Args().Get(0),
				OutputPath: c.String("output"),
			})
			if err != nil {
				return err
			}

			log.Info(l10n.F("Output saved to %s", result.OutputPath))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show a session's current segments and state.",
		ArgsUsage: "SESSION_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(l10n.T("status requires a session id."), 1)
			}

			svc, _, err := buildService(c)
			if err != nil {
				return err
			}

			meta, err := svc.Status(c.Args().Get(0))
			if err != nil {
				return err
			}

			fmt.Printf("session:    %s\n", meta.SessionID)
			fmt.Printf("template:   %s\n", meta.TemplateName)
			fmt.Printf("status:     %s\n", meta.Status)
			fmt.Printf("segments:   %d\n", len(meta.Segments))
			fmt.Printf("frames:     %d\n", meta.TotalFrames)
			if meta.OutputPath != "" {
				fmt.Printf("output:     %s\n", meta.OutputPath)
			}
			return nil
		},
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List the templates available in the config directory.",
		Action: func(c *cli.Context) error {
			svc, _, err := buildService(c)
			if err != nil {
				return err
			}

			summaries, err := svc.ListTemplates()
			if err != nil {
				return err
			}

			for _, t := range summaries {
				fmt.Printf("%-20s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}

// signalContext returns a context canceled on SIGINT/SIGTERM, the way
// the teacher's RecordCmd.Run wires interrupt handling around a
// single pipeline run.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

// buildService wires every adapter the orchestrator needs from the
// global flags, the way the teacher's RecordCmd.Run assembles its
// stages and adapters inline rather than through a container.
func buildService(c *cli.Context) (*orchestrator.Service, ports.Logger, error) {
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	fs := osfilesystem.New()
	ffmpegPath := c.String("ffmpeg")

	templates := yamlconfig.New(c.String("config-dir"))
	store := sessionstore.New(fs, c.String("sessions-dir"))
	muxer := ffmpegmux.New(ffmpegPath)

	controller := session.New(session.Deps{
		Store:     store,
		Templates: templates,
		Subtitle: func(width, height int, fontPath string, fontSize float64) ports.SubtitleRasterizer {
			return subtitle.New(width, height, fontPath, fontSize)
		},
		Compositor: func(width, height int) (session.CompositorCloser, error) {
			return glcompositor.New(width, height)
		},
		FFmpegPath: ffmpegPath,
	})

	return orchestrator.New(controller, templates, store, muxer, log), log, nil
}
