package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"plantpulse/internal/api"
	"plantpulse/internal/auth"
	"plantpulse/internal/config"
	"plantpulse/internal/logging"
	"plantpulse/internal/mutate"
	"plantpulse/internal/prefs"
	"plantpulse/internal/store"
	"plantpulse/internal/tui"
)

func main() {
	cfg := config.Load()

	if cfg.DBPath == "" {
		path, err := config.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg.DBPath = path
	}
	if cfg.LogPath == "" {
		if path, err := config.DefaultLogPath(); err == nil {
			cfg.LogPath = path
		}
	}

	log := logging.Open(cfg.LogPath, logrus.InfoLevel)

	settings, err := prefs.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening preferences: %v\n", err)
		os.Exit(1)
	}
	defer settings.Close()

	session := auth.NewSession()
	if cfg.UserEmail != "" {
		session.SignIn(auth.Principal{
			Email:       cfg.UserEmail,
			DisplayName: cfg.UserName,
			PhotoURL:    cfg.UserPhoto,
		}, cfg.Token)
	}

	client := api.New(cfg.APIBaseURL, cfg.APITimeout, session, log)
	records := store.NewRecords()
	coord := mutate.New(client, records, log)

	app := tui.NewApp(records, coord, session, settings)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
