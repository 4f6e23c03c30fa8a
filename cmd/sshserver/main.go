package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	gossh "golang.org/x/crypto/ssh"

	"github.com/gabrielsants/react-tetris/audio"
	"github.com/gabrielsants/react-tetris/logging"
	"github.com/gabrielsants/react-tetris/ui"
)

func main() {
	host := flag.String("host", "0.0.0.0", "listen host")
	port := flag.String("port", "23234", "listen port")
	keyPath := flag.String("host-key", ".ssh/blockdrop_ed25519", "host key path, generated when missing")
	flag.Parse()

	logger := logging.NewServer("ssh")
	env := ui.LoadEnv()

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(*host, *port)),
		wish.WithHostKeyPath(*keyPath),
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithKeyboardInteractiveAuth(func(ssh.Context, gossh.KeyboardInteractiveChallenge) bool { return true }),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(programHandler(env, logger), termenv.ANSI256),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		logger.Fatal("Could not create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Starting SSH server", "host", *host, "port", *port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("Could not start server", "err", err)
			done <- nil
		}
	}()

	<-done
	logger.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Error("Could not stop server", "err", err)
	}
}

// programHandler gives every session its own silent client with settings
// that last until the connection closes.
func programHandler(env ui.Env, logger *log.Logger) bubbletea.ProgramHandler {
	return func(sess ssh.Session) *tea.Program {
		if _, _, active := sess.Pty(); !active {
			wish.Fatalln(sess, "no active terminal, skipping")
			return nil
		}
		user := sess.User()
		if key := sess.PublicKey(); key != nil {
			user = gossh.FingerprintSHA256(key)
		}
		sessionLogger := logger.With("user", user)
		sessionLogger.Info("Session started")
		go func() {
			<-sess.Context().Done()
			sessionLogger.Info("Session closed")
		}()

		config := ui.DefaultConfig()
		config.Sound = false
		model := ui.NewModel(ui.Options{
			Storage: ui.NewMemoryStorage(config),
			Audio:   audio.NewNop(config.Sound, config.Music, float64(config.Volume)/100),
			Sync:    ui.NewScoreSyncFromEnv(env, config.Sync),
			Logger:  sessionLogger,
		})
		return tea.NewProgram(model, append(bubbletea.MakeOptions(sess), tea.WithAltScreen())...)
	}
}
