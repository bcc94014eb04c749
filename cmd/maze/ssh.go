package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the terminal version over SSH",
	Long: `Start an SSH server. Anyone connecting gets the pack menu and plays
in their own terminal; runs are recorded under their SSH user name.

Examples:
  maze ssh
  maze ssh --ssh :2222 --host-key ./keys/maze

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	Run:  runSSH,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	sshCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH listen address")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKey, "Path to the SSH host key (generated if missing)")
	sshCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Close idle connections after this long")
}

func runSSH(_ *cobra.Command, _ []string) {
	logger := newLogger("maze-ssh")
	mazeCfg, rules := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, logger)
	if store != nil {
		defer store.Close()
	}

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		Rules:       rules,
		Terminal:    mazeCfg.Terminal,
	}, store, logger)
	if err != nil {
		logger.Error("cannot start SSH server", "err", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
