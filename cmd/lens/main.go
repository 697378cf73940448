package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/junsooki/WinLens/internal/capture"
	"github.com/junsooki/WinLens/internal/collage"
	"github.com/junsooki/WinLens/internal/config"
	"github.com/junsooki/WinLens/internal/display"
	"github.com/junsooki/WinLens/internal/encoder"
	"github.com/junsooki/WinLens/internal/input"
	"github.com/junsooki/WinLens/internal/interaction"
	"github.com/junsooki/WinLens/internal/mirror"
	"github.com/junsooki/WinLens/internal/session"
	"github.com/junsooki/WinLens/internal/transform"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.NeedsWindowChoice() {
		if err := pickWindow(cfg, capture.ListWindows, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("window: %v", err)
		}
	}

	log.Printf("WinLens starting")
	log.Printf("  Session:  %s", cfg.SessionID)
	if cfg.Pattern {
		log.Printf("  Source:   test pattern")
	} else {
		log.Printf("  Source:   window %#x", cfg.Handle)
	}
	log.Printf("  Mirror:   %q", cfg.Mirror)
	log.Printf("  WebRTC:   %v", cfg.WebRTC)
	log.Printf("  Headless: %v", cfg.Headless)
	log.Printf("  Poll:     %v", cfg.Poll)

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("Shutting down...")
}

func run(cfg *config.Config) error {
	var capt capture.Capturer
	if cfg.Pattern {
		capt = capture.NewPattern(640, 480)
	} else {
		var err error
		if capt, err = capture.NewWindowCapturer(); err != nil {
			return err
		}
	}
	defer capt.Close()

	comp, err := collage.New()
	if err != nil {
		return err
	}

	keys := input.NewQueue(16)
	push := func(k interaction.Key) {
		if !keys.Push(k) {
			log.Printf("key %q dropped", rune(k))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var presenters session.Presenters
	var services []func(context.Context) error
	var disp display.Display
	if !cfg.Headless {
		disp = display.NewEbitenDisplay("WinLens", push)
		presenters = append(presenters, disp)
	}
	if cfg.Mirror != "" {
		m := mirror.NewServer(cfg.SessionID, transform.Names(), encoder.NewJPEGEncoder(cfg.Quality), push)
		if cfg.WebRTC {
			m.EnableWebRTC(cfg.PeerConfig())
		}
		presenters = append(presenters, m)
		services = append(services, func(ctx context.Context) error {
			if err := m.Run(ctx, cfg.Mirror); err != nil {
				return fmt.Errorf("mirror: %w", err)
			}
			return nil
		})
		log.Printf("Mirror listening on %s", cfg.Mirror)
	}
	if len(presenters) == 0 {
		return errors.New("nothing to present: -headless needs -mirror")
	}

	for i, name := range transform.Names() {
		if k, ok := interaction.SelectorKey(i); ok {
			log.Printf("  %c  %s", rune(k), name)
		}
	}
	log.Printf("  %c  back to grid, %c  quit", rune(interaction.KeyReset), rune(interaction.KeyQuit))

	sess := session.New(capt, cfg.Handle, comp, presenters, keys, cfg.Poll)
	if disp == nil {
		return supervise(ctx, sess.Run, services...)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- supervise(ctx, sess.Run, services...)
		disp.Close()
	}()

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	if err := disp.Run(); err != nil {
		cancel()
		<-errCh
		return err
	}
	cancel()
	return <-errCh
}

// errQuit ends the group when the session loop returns normally.
var errQuit = errors.New("session ended")

// supervise runs the session loop beside its services. The first failure
// from either side cancels the rest and is returned; a normal end of the
// loop stops the services and returns nil.
func supervise(ctx context.Context, loop func(context.Context) error, services ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range services {
		g.Go(func() error { return svc(gctx) })
	}
	g.Go(func() error {
		if err := loop(gctx); err != nil {
			return err
		}
		return errQuit
	})
	if err := g.Wait(); !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// pickWindow lists the open windows and asks which to capture.
func pickWindow(cfg *config.Config, list func() ([]capture.Window, error), in io.Reader, out io.Writer) error {
	ws, err := list()
	if err != nil {
		return err
	}
	w, err := capture.Choose(ws, in, out)
	if err != nil {
		return err
	}
	cfg.Handle = w.Handle
	cfg.Window = fmt.Sprintf("%#x", uintptr(w.Handle))
	return nil
}
