package router

import (
	"testing"

	tg "github.com/m3rciful/snackbot/core/telegram"
	"github.com/m3rciful/snackbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func testRegistry() *tg.Registry {
	reg := tg.NewRegistry()
	noop := func(tele.Context) error { return nil }
	reg.RegisterCommand("/start", commands.Command{
		Handler:     noop,
		Description: "start",
	})
	reg.RegisterCommand("/repair", commands.Command{
		Handler:     noop,
		Description: "repair",
		AdminOnly:   true,
		Hidden:      true,
	})
	return reg
}

func TestLookupTextCommand(t *testing.T) {
	reg := testRegistry()

	key, handler, ok := lookupTextCommand(reg, "/start")
	if !ok || handler == nil {
		t.Fatal("expected /start to resolve")
	}
	if key != "/start" {
		t.Fatalf("key = %q, expected /start", key)
	}

	if _, _, ok := lookupTextCommand(reg, "/unknown"); ok {
		t.Fatal("unregistered command must not resolve")
	}
	if _, _, ok := lookupTextCommand(nil, "/start"); ok {
		t.Fatal("nil registry must not resolve")
	}
}

func TestLookupTextCommandIgnoresBareWords(t *testing.T) {
	reg := testRegistry()

	// Free text without a slash stays free text: a user answering a prompt
	// with "start" or "repair" must reach the text fallback.
	for _, text := range []string{"start", "repair", "привет"} {
		if _, _, ok := lookupTextCommand(reg, text); ok {
			t.Fatalf("bare word %q must not resolve to a command", text)
		}
	}
}

func TestLookupTextCommandExcludesAdminOnly(t *testing.T) {
	reg := testRegistry()

	// The registry stores the raw handler; the access-gated one is bound by
	// CommandRoutes. Text input may never reach the ungated handler.
	if _, _, ok := lookupTextCommand(reg, "/repair"); ok {
		t.Fatal("admin-only command must not resolve through the text route")
	}
}
