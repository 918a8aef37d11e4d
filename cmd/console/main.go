package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"safety_monitor/internal/console"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SAFETY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("console.url", defaultAPIURL)

	baseURL := v.GetString("console.url")
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	api := console.NewAPIClient(baseURL)

	var streamCh <-chan tea.Msg
	wsURL, err := console.StreamURL(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid URL %q: %v\n", baseURL, err)
		os.Exit(1)
	}
	stream, err := console.DialStream(context.Background(), wsURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Live stream unavailable, running offline: %v\n", err)
	} else {
		defer func() { _ = stream.Close() }()
		streamCh = stream.C
	}

	p := tea.NewProgram(console.New(api, streamCh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
