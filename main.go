package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/infra/config"
	"github.com/gek-social/gek/infra/gemini"
	"github.com/gek-social/gek/infra/storage"
	"github.com/gek-social/gek/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: gek [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// newLogger builds a file logger: the TUI owns the terminal, so nothing may
// write to stdout/stderr while it runs.
func newLogger(dataDir string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dataDir, "gek.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	return cfg.Build()
}

// seedPosts is the starter feed content shown before the first upload.
func seedPosts() []domain.Post {
	travel := domain.User{
		ID:        "seed-travel",
		Username:  "travel_junkie",
		FullName:  "Travel Junkie",
		Avatar:    domain.AvatarURI("travel_junkie"),
		Banner:    domain.BannerURI("travel_junkie"),
		Bio:       "Chasing sunsets, one city at a time.",
		Followers: 1250,
		Following: 420,
	}
	art := domain.User{
		ID:        "seed-art",
		Username:  "art_daily",
		FullName:  "Art Daily",
		Avatar:    domain.AvatarURI("art_daily"),
		Banner:    domain.BannerURI("art_daily"),
		Bio:       "A new piece every day.",
		Followers: 890,
		Following: 150,
	}
	now := time.Now()
	return []domain.Post{
		{
			ID:        "seed-post-1",
			AuthorID:  travel.ID,
			Author:    travel,
			ImageURI:  "https://picsum.photos/seed/nightlife/600/600",
			Caption:   "Lost in the city lights 🌃 #nightlife #vibes",
			Likes:     89,
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:        "seed-post-2",
			AuthorID:  art.ID,
			Author:    art,
			ImageURI:  "https://picsum.photos/seed/abstract/600/600",
			Caption:   "Abstract thoughts on a Tuesday. What do you see? 🎨",
			Likes:     245,
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("Gek %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure.
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.DataDir)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	var assistant app.Assistant
	if cfg.GeminiAPIKey != "" {
		a, err := gemini.NewAssistant(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini unavailable, suggestions will use fallbacks", zap.Error(err))
		} else {
			assistant = a
		}
	}

	// 3. Build the application core.
	registry := app.NewRegistry(store, logger)
	session := app.NewSession(registry, store, logger)
	notifications := app.NewLog(session)
	suggest := app.NewSuggester(assistant, logger)
	feed := app.NewFeed()
	feed.Seed(seedPosts()...)

	// Resume the last session, if one was persisted.
	if user, ok := session.Restore(); ok {
		logger.Info("session restored", zap.String("username", user.Username))
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Registry:      registry,
		Session:       session,
		Feed:          feed,
		Notifications: notifications,
		Suggest:       suggest,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gek: %v\n", err)
		os.Exit(1)
	}
}
