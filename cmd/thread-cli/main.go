package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pribylovaa/comment-thread/internal/client"
	"github.com/pribylovaa/comment-thread/internal/config"
	"github.com/pribylovaa/comment-thread/internal/notify"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/thread"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const usage = `usage: thread-cli [flags] <command> [args]

commands:
  show                   print the page thread
  root <text>            post a top-level comment
  reply <id> <text>      reply to a comment
  delete [-yes] <id>     delete a comment (moderators only)
  like <id>              toggle your like
  timeline <id>          print the comment history link

flags:
`

var errUsage = errors.New("bad usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("thread-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		configPath  = fs.String("config", "", "path to config file (overrides CONFIG_PATH env)")
		addr        = fs.String("addr", "", "thread-service gRPC address")
		viewerID    = fs.String("viewer", "", "viewer id sent as x-viewer-id")
		projectID   = fs.String("project", "", "project id for new top-level comments")
		pageID      = fs.String("page", "", "page id")
		timeout     = fs.Duration("timeout", 0, "per-call timeout")
		maintenance = fs.Bool("maintenance", false, "maintenance mode: like and reply disabled")
		noTimeline  = fs.Bool("no-timeline", false, "disable timeline links")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}

	// Флаги, заданные явно, перекрывают файл и ENV.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "viewer":
			cfg.ViewerID = *viewerID
		case "project":
			cfg.ProjectID = *projectID
		case "page":
			cfg.PageID = *pageID
		case "timeout":
			cfg.Timeout = *timeout
		case "maintenance":
			cfg.Maintenance = *maintenance
		case "no-timeline":
			cfg.DisableTimeline = *noTimeline
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}

	if cfg.PageID == "" {
		fmt.Fprintln(stderr, "config: page id is required (-page or THREAD_PAGE_ID)")
		return 1
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	log := setupLogger(cfg.Env, stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	h, err := newHost(ctx, *cfg, log)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer h.close()

	cmdErr := h.exec(ctx, fs.Arg(0), fs.Args()[1:], stdout)

	renderEvents(stderr, h.queue.Drain())
	render(stdout, h.ctl.Compose())

	switch {
	case errors.Is(cmdErr, errUsage):
		fmt.Fprintln(stderr, cmdErr)
		fs.Usage()
		return 2
	case cmdErr != nil:
		fmt.Fprintln(stderr, "error:", cmdErr)
		return 1
	}

	return 0
}

// host — поверхность отрисовки: ветка страницы, контроллер и уведомления.
type host struct {
	client *client.Client
	ctl    *thread.Controller
	queue  *notify.Queue
}

func newHost(ctx context.Context, cfg config.ClientConfig, log *slog.Logger) (*host, error) {
	c, err := client.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.ViewerID != "" {
		if _, err := c.FetchViewer(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("fetch viewer: %w", err)
		}
	}

	th, err := c.Thread(ctx)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("load thread: %w", err)
	}

	q := notify.NewQueue(0)
	lg := notify.NewLogger(log)

	ctl := thread.NewController(th, thread.Env{
		Remote:           c,
		Viewer:           c,
		Notifier:         notify.Fanout{q, lg},
		Diagnostics:      lg,
		Maintenance:      cfg.Maintenance,
		DisableTimeline:  cfg.DisableTimeline,
		FeedbackDuration: cfg.Feedback,
	})

	return &host{client: c, ctl: ctl, queue: q}, nil
}

func (h *host) close() {
	h.ctl.Close()
	_ = h.client.Close()
}

func (h *host) exec(ctx context.Context, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "show":
		return nil

	case "root":
		if len(args) != 1 {
			return fmt.Errorf("%w: root <text>", errUsage)
		}
		if err := h.ctl.SetRootDraft(richtext.FromPlainText(args[0])); err != nil {
			return err
		}
		created, err := h.ctl.SubmitRoot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created %s\n", created.ID)
		return nil

	case "reply":
		if len(args) != 2 {
			return fmt.Errorf("%w: reply <id> <text>", errUsage)
		}
		id := args[0]
		open, err := h.ctl.PressReply(id)
		if err != nil {
			return err
		}
		if !open {
			return errors.New(thread.ReplyDepthHint)
		}
		if err := h.ctl.SetDraft(id, richtext.FromPlainText(args[1])); err != nil {
			return err
		}
		created, err := h.ctl.SubmitReply(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created %s\n", created.ID)
		return nil

	case "delete":
		dfs := flag.NewFlagSet("delete", flag.ContinueOnError)
		dfs.SetOutput(io.Discard)
		yes := dfs.Bool("yes", false, "confirm deletion")
		if err := dfs.Parse(args); err != nil || dfs.NArg() != 1 {
			return fmt.Errorf("%w: delete [-yes] <id>", errUsage)
		}
		id := dfs.Arg(0)
		if err := h.ctl.RequestDelete(id); err != nil {
			return err
		}
		if !*yes {
			fmt.Fprintln(out, "Are you sure? Re-run with -yes to delete.")
			return nil
		}
		if err := h.ctl.ConfirmDelete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", id)
		return nil

	case "like":
		if len(args) != 1 {
			return fmt.Errorf("%w: like <id>", errUsage)
		}
		likes, err := h.ctl.ToggleLike(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "likes %d\n", len(likes))
		return nil

	case "timeline":
		if len(args) != 1 {
			return fmt.Errorf("%w: timeline <id>", errUsage)
		}
		url, ok, err := h.ctl.OpenTimeline(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("timeline is disabled")
		}
		fmt.Fprintln(out, url)
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// setupLogger — уровни как у сервиса, но в stderr: stdout занят выводом ветки.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	case envDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}
