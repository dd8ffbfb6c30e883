package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formtags/pkg/element"
	"github.com/goliatone/go-formtags/pkg/fielderrors"
	"github.com/goliatone/go-formtags/pkg/layout"
	"github.com/goliatone/go-formtags/pkg/session"
)

func main() {
	layoutPath := flag.String("layout", "", "layout file or directory (JSON/YAML)")
	tabID := flag.String("tab", "", "tab to render (all tabs if empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for the tab when -tab is empty")
	rawAttrs := flag.Bool("raw-attrs", false, "do not escape attribute values")
	sanitize := flag.Bool("sanitize", false, "filter output through the bluemonday UGC policy")
	secret := flag.String("secret", "", "key used to sign the hidden state field")
	errorsPath := flag.String("errors", "", "JSON validation payload (field path -> messages) to render inline")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := runConfig{
		layoutPath:  *layoutPath,
		tabID:       *tabID,
		interactive: *interactive,
		rawAttrs:    *rawAttrs,
		sanitize:    *sanitize,
		secret:      *secret,
		errorsPath:  *errorsPath,
	}

	markup, err := run(cfg, logger)
	if err != nil {
		logger.Error("render failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, markup, 0o644); err != nil {
			logger.Error("write output", slog.String("path", *output), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("form written", slog.String("path", *output))
		return
	}
	fmt.Println(string(markup))
}

type runConfig struct {
	layoutPath  string
	tabID       string
	interactive bool
	rawAttrs    bool
	sanitize    bool
	secret      string
	errorsPath  string
}

func run(cfg runConfig, logger *slog.Logger) ([]byte, error) {
	doc, err := loadLayout(cfg.layoutPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("layout loaded", slog.String("source", cfg.layoutPath), slog.Int("tabs", len(doc.Tabs)))

	tabID := strings.TrimSpace(cfg.tabID)
	if tabID == "" && cfg.interactive {
		tabID, err = promptTab(doc.TabIDs())
		if err != nil {
			return nil, err
		}
	}

	tabs := doc.Tabs
	if tabID != "" {
		tab, ok := doc.Tab(tabID)
		if !ok {
			return nil, fmt.Errorf("formtags: tab %q not found", tabID)
		}
		tabs = []layout.Tab{tab}
	}

	options := []element.Option{element.WithLogger(logger)}
	if cfg.rawAttrs {
		options = append(options, element.WithRawAttributes())
	}
	if cfg.sanitize {
		options = append(options, element.WithSanitizer(bluemonday.UGCPolicy()))
	}

	sessOptions := []session.Option{
		session.WithRenderer(element.New(options...)),
		session.WithLogger(logger),
	}
	if cfg.secret != "" {
		sessOptions = append(sessOptions, session.WithSecret([]byte(cfg.secret)))
	}
	if cfg.errorsPath != "" {
		registry, err := loadErrors(cfg.errorsPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("validation payload loaded", slog.Int("fields", registry.Count()))
		sessOptions = append(sessOptions, session.WithRegistry(registry))
	}
	sess := session.New(sessOptions...)
	defer sess.Close()
	sess.LastActiveTab = tabID

	var buf bytes.Buffer
	if err := sess.RenderFieldError(&buf, fielderrors.FormKey); err != nil {
		return nil, err
	}
	shown := make(map[string]struct{})
	for _, tab := range tabs {
		for _, field := range tab.Fields {
			if err := sess.Render(&buf, field); err != nil {
				return nil, fmt.Errorf("formtags: tab %q: %w", tab.ID, err)
			}
			if !carriesMessage(field) {
				continue
			}
			if _, done := shown[field.ID]; done {
				continue
			}
			shown[field.ID] = struct{}{}
			if err := sess.RenderFieldError(&buf, field.ID); err != nil {
				return nil, fmt.Errorf("formtags: tab %q: %w", tab.ID, err)
			}
		}
	}

	if cfg.secret != "" {
		field, err := sess.StateField("")
		if err != nil {
			return nil, err
		}
		if err := sess.Render(&buf, field); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func loadLayout(path string) (layout.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return layout.Document{}, errors.New("formtags: -layout is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return layout.Document{}, fmt.Errorf("formtags: layout: %w", err)
	}
	if info.IsDir() {
		return layout.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Document{}, fmt.Errorf("formtags: read layout: %w", err)
	}
	return layout.Parse(data, filepath.Base(path))
}

// carriesMessage reports whether a field's message is rendered right after
// it: visible elements with an id.
func carriesMessage(field element.Description) bool {
	if field.ID == "" {
		return false
	}
	switch field.Kind {
	case element.KindOpen, element.KindStandalone, element.KindComplete:
		return true
	default:
		return false
	}
}

func loadErrors(path string) (*fielderrors.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formtags: read errors: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("formtags: parse errors %s: %w", path, err)
	}
	return fielderrors.FromPayload(payload), nil
}

func promptTab(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("formtags: layout has no tabs")
	}
	var choice string
	prompt := &survey.Select{
		Message: "Tab to render:",
		Options: ids,
		Default: ids[0],
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("formtags: prompt: %w", err)
	}
	return choice, nil
}
