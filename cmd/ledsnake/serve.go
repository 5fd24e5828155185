package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ledsnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server. Every session gets its own board and game.

Connect with:
  ssh -p 23234 localhost

Examples:
  ledsnake serve
  ledsnake serve --ssh :2222
  ledsnake serve --host-key ./host_key`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides ssh.address)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to host key (default: ~/.ledsnake/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle connection timeout (overrides ssh.idle_timeout_minutes)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _ := loadConfig(cmd)
	if cmd.Flags().Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.SSH.HostKeyPath = flagHostKeyPath
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.SSH.IdleTimeoutMinutes = int(flagIdleTimeout / time.Minute)
	}

	logger := newLogger(os.Stderr, cfg, "ledsnake-ssh")
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return err
	}

	return server.ListenAndServe(context.Background())
}
