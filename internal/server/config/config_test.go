package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.Addr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "admin@bookit.local", c.AdminEmail)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"server"}

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":5000", c.Addr)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-s", "secret", "-t", "15", "-e", "root@x.io", "-p", "pw", "-l", "debug", "-ignored", "x"},
			want: func(c *Config) {
				c.Addr = "127.0.0.1:9090"
				c.SecretKey = "secret"
				c.TokenValidityDuration = 15 * time.Minute
				c.AdminEmail = "root@x.io"
				c.AdminPassword = "pw"
				c.LogLevel = "debug"
			},
		},
		{
			name: "disable seeding",
			args: []string{"-e="},
			want: func(c *Config) { c.AdminEmail = "" },
		},
		{
			name:    "incorrect validity",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			got.LoadDefaults()

			err := parseFlags(&got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var want Config
			want.LoadDefaults()
			tt.want(&want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}
