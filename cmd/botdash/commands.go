package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/osrsbots/botdash/internal/botapi"
	"github.com/osrsbots/botdash/internal/botconfig"
	"github.com/osrsbots/botdash/internal/discovery"
	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/monitor"
	"github.com/osrsbots/botdash/internal/notify"
	"github.com/osrsbots/botdash/internal/registry"
	"github.com/osrsbots/botdash/internal/stream"
	"github.com/osrsbots/botdash/internal/tui"
	"github.com/osrsbots/botdash/internal/ui"
)

// Command flags
var (
	backendHost string
	backendPort int
	scanTimeout int
	username    string
	outputPath  string
)

func init() {
	// Common flags for backend commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&backendHost, "host", "", "Backend host (skips discovery)")
	rootCmd.PersistentFlags().IntVar(&backendPort, "port", botapi.DefaultPort, "Backend HTTP port")

	// Add subcommands directly to root
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// scanCmd discovers backends on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for bot backends on the network",
	Long: `Scan for bot backends using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from bot backends and displays
all discovered backends with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  botdash scan

  # Quick 3-second scan
  botdash scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for bot backends (timeout: %ds)...\n\n", scanTimeout)

	servers, err := discovery.ScanForServers(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		fmt.Println("No backends found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the backend is running on this network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --host flag to specify the address manually")
		return nil
	}

	fmt.Printf("Found %d backend(s):\n\n", len(servers))

	for i, server := range servers {
		fmt.Printf("%d. %s\n", i+1, server.Name)
		fmt.Printf("   Address: %s:%d\n", server.IP, server.Port)
		if len(server.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", server.Metadata)
		}
		fmt.Println()
	}

	// Remember what we saw so the dashboard can offer it next time.
	if reg, err := registry.GetGlobalRegistry(); err == nil {
		for _, server := range servers {
			reg.UpdateBackendLastSeen(server.Name, server.BaseURL())
		}
		_ = registry.SaveGlobal()
	}

	fmt.Println("Use 'botdash --host <ip>' to open the dashboard for a backend")
	return nil
}

// dashboardCmd launches the interactive TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive TUI dashboard.

The dashboard provides:
- A live list of every bot with its status
- Start, stop, pause and resume controls
- A typed configuration editor per bot with live validation
- Toast notifications streamed from the backend

This is the recommended way to manage bots for most users.`,
	Example: `  # Launch with auto-discovery
  botdash dashboard
  # Or simply (dashboard is default):
  botdash

  # Launch against a specific backend
  botdash --host 192.168.1.50`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	host, err := resolveHost()
	if err != nil {
		return err
	}

	client := botapi.NewClient(host, backendPort)

	reg, regErr := registry.GetGlobalRegistry()
	if regErr != nil {
		reg = nil
	}
	if reg != nil {
		reg.UpdateBackendLastSeen(host, client.BaseURL)
	}

	// Ask for the notification stream port while the client is still
	// quiet; a missing stream only degrades the dashboard.
	var wsPort int
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		wsPort, _ = client.LoggingPort(ctx)
	}()

	model := tui.NewAppModel(client, reg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Everything user-visible goes through the program from here on.
	notifier := notify.NewProgram(p)
	client.Notifier = notifier

	mon := monitor.New(monitor.ProberFunc(func(ctx context.Context) error {
		err := client.Ping(ctx)
		logging.LogProbe(client.BaseURL, err == nil, err)
		return err
	}), func(state monitor.State) {
		p.Send(tui.ConnectionChangedMsg{State: state})
	})
	mon.Start()
	defer mon.Stop()

	if wsPort > 0 {
		listener := stream.NewListener(host, wsPort, notifier)
		listener.Start()
		defer listener.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// botsCmd lists the bots registered with the backend
var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List bots registered with the backend",
	Example: `  botdash bots
  botdash bots --host 192.168.1.50`,
	RunE: runBots,
}

func runBots(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	bots, err := client.ListBots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bots: %w", err)
	}

	if len(bots) == 0 {
		fmt.Println("No bots registered with this backend.")
		return nil
	}

	fmt.Println(ui.RenderBanner(fmt.Sprintf("Bots (%d)", len(bots)), client.BaseURL))
	for id, bot := range bots {
		fmt.Println(ui.RenderDetailPanel(bot.Name, []ui.DetailRow{
			{Label: "ID", Value: id},
			{Label: "Description", Value: bot.Description},
			{Label: "Parameters", Value: strconv.Itoa(len(bot.ConfigParams))},
		}))
	}
	return nil
}

// statusCmd reports the runtime status of one bot
var statusCmd = &cobra.Command{
	Use:     "status <bot-id>",
	Short:   "Show the runtime status of a bot",
	Example: `  botdash status fisher`,
	Args:    cobra.ExactArgs(1),
	RunE:    runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	status, err := client.Status(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	rows := []ui.DetailRow{
		{Label: "Status", Value: ui.RenderBotStatus(status.Status)},
	}
	if status.Running() {
		rows = append(rows,
			ui.DetailRow{Label: "Paused", Value: strconv.FormatBool(status.Paused)},
			ui.DetailRow{Label: "Runtime", Value: tui.FormatRuntime(status.Runtime)},
		)
	}
	fmt.Println(ui.RenderDetailPanel(args[0], rows))
	return nil
}

// startCmd starts a bot with its stored configuration
var startCmd = &cobra.Command{
	Use:   "start <bot-id>",
	Short: "Start a bot with its stored configuration",
	Example: `  botdash start fisher
  botdash start fisher --username my_account`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&username, "username", "", "Account username to run the bot under")
}

func runStart(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	botID := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	config, err := client.GetConfig(ctx, botID)
	if err != nil {
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	name := username
	if name == "" {
		if reg, regErr := registry.GetGlobalRegistry(); regErr == nil {
			if meta := reg.GetBot(botID); meta != nil && meta.Username != "" {
				name = meta.Username
			} else if reg.Preferences != nil {
				name = reg.Preferences.DefaultUsername
			}
		}
	}

	if err := client.Start(ctx, botID, config, name); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	if reg, regErr := registry.GetGlobalRegistry(); regErr == nil {
		reg.RecordBotStart(botID, name)
		_ = registry.SaveGlobal()
	}

	fmt.Printf("✓ Started %s\n", botID)
	return nil
}

// stopCmd stops a running bot
var stopCmd = &cobra.Command{
	Use:     "stop <bot-id>",
	Short:   "Stop a running bot",
	Example: `  botdash stop fisher`,
	Args:    cobra.ExactArgs(1),
	RunE:    runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	if err := client.Stop(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to stop bot: %w", err)
	}

	fmt.Printf("✓ Stopped %s\n", args[0])
	return nil
}

// exportCmd writes a bot's stored configuration to a JSON file
var exportCmd = &cobra.Command{
	Use:   "export <bot-id>",
	Short: "Export a bot's configuration to a JSON file",
	Example: `  # Export to bot_config.json in the current directory
  botdash export fisher

  # Export to a specific file
  botdash export fisher --out fisher.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&outputPath, "out", "", "Output file (default bot_config.json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	config, err := client.GetConfig(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	path, err := botconfig.ExportFile(outputPath, config)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Printf("✓ Configuration exported to %s\n", path)
	return nil
}

// importCmd uploads a JSON configuration file to a bot
var importCmd = &cobra.Command{
	Use:     "import <bot-id> <file>",
	Short:   "Import a bot's configuration from a JSON file",
	Example: `  botdash import fisher bot_config.json`,
	Args:    cobra.ExactArgs(2),
	RunE:    runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	botID, path := args[0], args[1]

	var config map[string]json.RawMessage
	importErr := botconfig.ImportFile(path, notify.Nop, func(c map[string]json.RawMessage) {
		config = c
	})
	if importErr != nil {
		return fmt.Errorf("failed to read %s: %w", path, importErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), botapi.DefaultTimeout)
	defer cancel()

	if err := client.SaveConfig(ctx, botID, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Configuration imported for %s\n", botID)
	return nil
}

// newClient builds an API client for the resolved backend.
func newClient() (*botapi.Client, error) {
	host, err := resolveHost()
	if err != nil {
		return nil, err
	}
	return botapi.NewClient(host, backendPort), nil
}

// resolveHost returns the backend host from the --host flag or mDNS
// discovery.
func resolveHost() (string, error) {
	if backendHost != "" {
		return backendHost, nil
	}

	// A preferred backend in the registry is looked up by name first.
	if reg, err := registry.GetGlobalRegistry(); err == nil &&
		reg.Preferences != nil && reg.Preferences.DefaultBackend != "" {
		name := reg.Preferences.DefaultBackend
		fmt.Printf("Looking for preferred backend %q...\n", name)
		if server, err := discovery.FindServer(name); err == nil && server != nil {
			fmt.Printf("Found backend: %s (%s:%d)\n\n", server.Name, server.IP, server.Port)
			if server.Port != 0 {
				backendPort = server.Port
			}
			return server.IP, nil
		}
		fmt.Println("Preferred backend not found, scanning...")
	}

	fmt.Println("No backend specified, attempting auto-discovery...")
	servers, err := discovery.QuickScan()
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}

	if len(servers) == 0 {
		return "", fmt.Errorf("no backends found. Use --host flag to specify the address manually")
	}

	if len(servers) > 1 {
		fmt.Printf("Found %d backends:\n", len(servers))
		for i, server := range servers {
			fmt.Printf("%d. %s (%s:%d)\n", i+1, server.Name, server.IP, server.Port)
		}
		return "", fmt.Errorf("multiple backends found. Use --host flag to specify which one")
	}

	server := servers[0]
	fmt.Printf("Found backend: %s (%s:%d)\n\n", server.Name, server.IP, server.Port)
	if server.Port != 0 {
		backendPort = server.Port
	}
	return server.IP, nil
}
