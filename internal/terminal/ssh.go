package terminal

import (
	"fmt"
	"time"

	"github.com/benbeisheim/setachess-backend/internal/store"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	"github.com/gofiber/fiber/v2/log"
	gossh "golang.org/x/crypto/ssh"
)

const sshIdleTimeout = 10 * time.Minute

// NewSSHServer serves one independent game per SSH session. Colour is used
// only when the client asked for a pty. Without hostKeyFile a key is
// generated at startup.
func NewSSHServer(addr, hostKeyFile string, st store.Store, defaultSlot string) (*ssh.Server, error) {
	server := &ssh.Server{
		Addr:        addr,
		IdleTimeout: sshIdleTimeout,
		Handler: func(sshSession ssh.Session) {
			_, _, isPty := sshSession.Pty()
			session := NewSession(petname.Generate(2, "-"), st, defaultSlot, isPty)
			log.Infof("ssh session %s opened by %s from %s", session.Name, sshSession.User(), sshSession.RemoteAddr())

			var err error
			if isPty {
				err = session.RunTerminal(sshSession.Context(), sshSession)
			} else {
				err = session.Run(sshSession.Context(), sshSession, sshSession)
			}
			if err != nil {
				log.Warnf("ssh session %s ended: %v", session.Name, err)
				sshSession.Exit(1)
				return
			}
			log.Infof("ssh session %s closed", session.Name)
			sshSession.Exit(0)
		},
		// Anyone may play; no accounts exist.
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if hostKeyFile != "" {
		if err := server.SetOption(ssh.HostKeyFile(hostKeyFile)); err != nil {
			return nil, fmt.Errorf("load ssh host key: %w", err)
		}
	}
	return server, nil
}
