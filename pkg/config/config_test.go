package config

import (
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseEnv(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("LODGED_HTTP_LISTEN_ADDR", ":9999"))
	is.NoErr(os.Setenv("LODGED_AUTH_SESSION_TTL", "1h"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("LODGED_HTTP_LISTEN_ADDR"))
		is.NoErr(os.Unsetenv("LODGED_AUTH_SESSION_TTL"))
	})

	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.HTTP.ListenAddr, ":9999")
	is.Equal(cfg.SessionTTL(), time.Hour)
}

func TestDefaults(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()
	is.Equal(cfg.HTTP.ListenAddr, ":23240")
	is.Equal(cfg.DB.Driver, "sqlite")
	is.Equal(cfg.QueryTimeout(), 10*time.Second)
	is.Equal(cfg.CacheTTL(), 30*time.Second)
	is.Equal(cfg.ScopeTTL(), 5*time.Minute)
	is.True(cfg.Auth.LinkSecret != "")
}

func TestWriteAndParseFile(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Name = "Test Lodge"
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())

	got := DefaultConfig()
	got.DataPath = cfg.DataPath
	is.NoErr(got.ParseFile())
	is.Equal(got.Name, "Test Lodge")
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()
	is.NoErr(cfg.Validate())

	cfg.Auth.SessionTTL = "bogus"
	is.True(cfg.Validate() != nil)
}
