package cmd

import (
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"update", "check", "shapes", "tables", "init", "watch"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("--debug flag missing")
	}
	conf := rootCmd.PersistentFlags().Lookup("config")
	if conf == nil {
		t.Fatal("--config flag missing")
	}
	if conf.DefValue != "config.yaml" {
		t.Errorf("--config default = %q, want config.yaml", conf.DefValue)
	}
}

func TestUpdateFlags(t *testing.T) {
	update, _, err := rootCmd.Find([]string{"update"})
	if err != nil {
		t.Fatalf("Find(update) error: %v", err)
	}
	for _, name := range []string{"dry-run", "presentation", "output"} {
		if update.Flags().Lookup(name) == nil {
			t.Errorf("update --%s flag missing", name)
		}
	}
}

func TestParseSlideArg(t *testing.T) {
	if n, err := parseSlideArg("3"); err != nil || n != 3 {
		t.Errorf("parseSlideArg(3) = %d, %v", n, err)
	}
	for _, bad := range []string{"0", "-1", "two", ""} {
		if _, err := parseSlideArg(bad); err == nil {
			t.Errorf("parseSlideArg(%q) accepted, want error", bad)
		}
	}
}
