package ui

import (
	"context"

	"github.com/templui/contacts/internal/ctxkeys"
)

const defaultAppName = "Contacts"

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return defaultAppName
}

func pageTitle(ctx context.Context, title string) string {
	if title == "" {
		return appName(ctx)
	}
	return title + " - " + appName(ctx)
}
