package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range Root().Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"serve", "migrate", "version"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}

func TestMigrationsDirFlag(t *testing.T) {
	flag := Root().PersistentFlags().Lookup("migrations-dir")
	if assert.NotNil(t, flag) {
		assert.Equal(t, "", flag.DefValue)
	}
}
