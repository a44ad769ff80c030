package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/setachess-backend/internal/config"
	"github.com/benbeisheim/setachess-backend/internal/store"
	"github.com/benbeisheim/setachess-backend/internal/terminal"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/term"
)

func main() {
	serveSSH := flag.Bool("ssh", false, "serve games over SSH instead of this terminal")
	slot := flag.String("slot", "", "default save slot (overrides DEFAULT_SLOT)")
	noColour := flag.Bool("no-color", false, "disable colour output")
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("failed to read configuration: %v", err)
	}
	if *slot != "" {
		cfg.Store.DefaultSlot = *slot
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer st.Close()

	if *serveSSH {
		server, err := terminal.NewSSHServer(cfg.Terminal.SSHAddr, cfg.Terminal.HostKeyFile, st, cfg.Store.DefaultSlot)
		if err != nil {
			log.Fatalf("failed to set up ssh server: %v", err)
		}
		go func() {
			<-ctx.Done()
			server.Close()
		}()
		log.Infof("serving ssh on %s", cfg.Terminal.SSHAddr)
		if err := server.ListenAndServe(); err != nil && ctx.Err() == nil {
			log.Errorf("ssh server stopped: %v", err)
		}
		return
	}

	useColour := !*noColour && term.IsTerminal(int(os.Stdout.Fd()))
	session := terminal.NewSession(petname.Generate(2, "-"), st, cfg.Store.DefaultSlot, useColour)
	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Errorf("session ended: %v", err)
	}
}
