package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/ctbs/internal/colour"
	"github.com/jmylchreest/ctbs/internal/contrast"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, contrast.TargetAAA, cfg.Contrast.Target)
	assert.Equal(t, 12, cfg.Extract.Clusters)
	assert.True(t, cfg.Extract.Blur)
	assert.Equal(t, "#0d6efd", cfg.Defaults.Primary)
}

func TestDecodePartial(t *testing.T) {
	cfg := Default()
	doc := `
[contrast]
target = 4.5

[extract]
clusters = 8
blur = false

[output]
prefix = "app"
`
	require.NoError(t, Decode(strings.NewReader(doc), &cfg))

	assert.Equal(t, 4.5, cfg.Contrast.Target)
	assert.Equal(t, contrast.DefaultBuffer, cfg.Contrast.Buffer, "absent keys keep defaults")
	assert.Equal(t, 8, cfg.Extract.Clusters)
	assert.Equal(t, 12, cfg.Extract.DarkClusters)
	assert.False(t, cfg.Extract.Blur)
	assert.Equal(t, "app", cfg.CSSOptions().Prefix)
	require.NoError(t, cfg.Validate())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader("[contrast]\ntarghet = 7\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys")
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cfg := Default()
	assert.Error(t, Decode(strings.NewReader("[contrast\n"), &cfg))
}

func TestEncodeDecode(t *testing.T) {
	cfg := Default()
	cfg.Output.Prefix = "site"

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cfg))
	assert.Contains(t, buf.String(), "[extract]")

	var back Config
	require.NoError(t, Decode(&buf, &back))
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "ctbs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nprimary = \"#6610f2\"\n"), 0o600))

	cfg, err = Load(path)
	require.NoError(t, err)
	d, err := cfg.RoleDefaults()
	require.NoError(t, err)
	assert.Equal(t, colour.RGB{R: 102, G: 16, B: 242}, d.Primary)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/ctbs.toml")
	assert.Equal(t, "/etc/ctbs.toml", Path(""))
	assert.Equal(t, "local.toml", Path("local.toml"))
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		EnvTarget:   "4.5",
		EnvClusters: "6",
		EnvBlur:     "false",
	})))
	assert.Equal(t, 4.5, cfg.Contrast.Target)
	assert.Equal(t, 6, cfg.Extract.Clusters)
	assert.Equal(t, 6, cfg.Extract.DarkClusters)
	assert.False(t, cfg.Extract.Blur)

	untouched := Default()
	require.NoError(t, untouched.ApplyEnv(envMap(map[string]string{EnvTarget: ""})))
	assert.Equal(t, Default(), untouched)
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "target", env: map[string]string{EnvTarget: "high"}},
		{name: "clusters", env: map[string]string{EnvClusters: "many"}},
		{name: "blur", env: map[string]string{EnvBlur: "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.ApplyEnv(envMap(tt.env)))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "target", mutate: func(c *Config) { c.Contrast.Target = 25 }, want: "contrast.target"},
		{name: "button target", mutate: func(c *Config) { c.Contrast.ButtonTarget = 0 }, want: "contrast.button_target"},
		{name: "buffer", mutate: func(c *Config) { c.Contrast.Buffer = -1 }, want: "contrast.buffer"},
		{name: "colour", mutate: func(c *Config) { c.Defaults.Gray = "grey" }, want: "defaults.gray"},
		{name: "clusters", mutate: func(c *Config) { c.Extract.Clusters = 0 }, want: "extract.clusters"},
		{name: "algorithm", mutate: func(c *Config) { c.Extract.Algorithm = "median-cut" }, want: "invalid algorithm"},
		{name: "blur radius", mutate: func(c *Config) { c.Extract.BlurRadius = -2 }, want: "blur_radius"},
		{name: "prefix", mutate: func(c *Config) { c.Output.Prefix = "Not Valid" }, want: "output.prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateOrderIsStable(t *testing.T) {
	cfg := Default()
	cfg.Extract.Clusters = 0
	cfg.Extract.DarkClusters = 0

	first := cfg.Validate()
	require.Error(t, first)
	msg := first.Error()
	assert.Less(t, strings.Index(msg, "extract.clusters"), strings.Index(msg, "extract.dark_clusters"))
	for range 20 {
		assert.Equal(t, msg, cfg.Validate().Error())
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Contrast.Target = 4.5
	cfg.Contrast.ButtonTarget = 4.5
	cfg.Contrast.Buffer = 0.25

	rules := cfg.Rules()
	assert.Equal(t, 4.5, rules.TextTarget)
	assert.Equal(t, 4.5, rules.ButtonTarget)
	require.NoError(t, rules.Validate())

	solver := contrast.New(cfg.SolverOptions()...)
	assert.Equal(t, 0.25, solver.Buffer())
}
