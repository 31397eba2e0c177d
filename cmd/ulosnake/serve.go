package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ulo-snake/internal/platform/tui"
)

var (
	flagSSHHost     string
	flagSSHPort     int
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ULO Snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own menu and game. The SSH user name is the
player identity, so one user can have only one game running at a time.
All connections share the same leaderboard and token balances.

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.ulosnake/host_key

Examples:
  ulosnake serve                     # Listen on the configured address
  ulosnake serve --port 2323         # Listen on port 2323
  ulosnake serve --host-key ./key    # Use specific host key

Users can connect with:
  ssh -p 2222 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&flagSSHPort, "port", 0, "Listen port (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	srvCfg := rt.cfg.Server
	if cmd.Flags().Changed("host") {
		srvCfg.Host = flagSSHHost
	}
	if flagSSHPort != 0 {
		srvCfg.Port = flagSSHPort
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout != 0 {
		srvCfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfigFrom(srvCfg), rt.svc)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx := cmd.Context()

	fmt.Printf("Starting ULO Snake SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh -p %d localhost\n", srvCfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
