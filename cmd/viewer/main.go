package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/junsooki/WinLens/internal/config"
	"github.com/junsooki/WinLens/internal/decoder"
	"github.com/junsooki/WinLens/internal/display"
	"github.com/junsooki/WinLens/internal/interaction"
	"github.com/junsooki/WinLens/internal/mirror"
)

func main() {
	cfg, err := config.ParseViewerFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("WinLens Viewer starting")
	log.Printf("  Server: %s", cfg.Server)
	log.Printf("  WebRTC: %v", cfg.WebRTC)

	var dec decoder.Decoder = decoder.NewJPEGDecoder()

	var client *mirror.Client

	// Display sends typed keys back to the lens.
	var disp display.Display = display.NewEbitenDisplay("WinLens Viewer", func(k interaction.Key) {
		if err := client.SendKey(k); err != nil {
			log.Printf("send key: %v", err)
		}
	})

	client = mirror.NewClient(cfg.Server, mirror.Handler{
		OnHello: func(session string, transforms []string) {
			log.Printf("Joined session %s", session)
			for i, name := range transforms {
				if k, ok := interaction.SelectorKey(i); ok {
					log.Printf("  %c  %s", rune(k), name)
				}
			}
		},
		OnFrame: func(data []byte) {
			f, err := dec.Decode(data)
			if err != nil {
				log.Printf("%v", err)
				return
			}
			_ = disp.Present(f)
		},
		OnError: func(msg string) {
			log.Printf("mirror error: %s", msg)
		},
	})

	if cfg.WebRTC {
		client.EnableWebRTC(cfg.PeerConfig())
	}
	if err := client.Connect(); err != nil {
		log.Fatalf("mirror connect: %v", err)
	}
	defer client.Close()

	go func() {
		<-client.Done()
		log.Println("Lens disconnected")
		disp.Close()
	}()

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	if err := disp.Run(); err != nil {
		log.Fatalf("display: %v", err)
	}
}
