package config

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("DB_USER", "yeti")
	v.Set("DB_PASSWORD", "s3cr'et")
	v.Set("DB_SERVER", "db.local")
	v.Set("DB_NAME", "assets")
	v.Set("JWT_SECRET", "test-secret")
	return v
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(baseViper())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins)
	assert.Equal(t, []string{"Repaired", "Received"}, cfg.Reports.RepairDone)
	assert.True(t, cfg.AllowPlaintext)
	assert.Equal(t, `host='db.local' user='yeti' password='s3cr\'et' dbname='assets' sslmode=disable`, cfg.DB.DSN())
}

func TestLoadFrom_MissingDBVars(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("DB_USER", "yeti")

	_, err := LoadFrom(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD, DB_SERVER, DB_NAME")
}

func TestLoadFrom_DSNOverride(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("DB_DSN", "postgres://u:p@localhost:5432/assets")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/assets", cfg.DB.DSN())
}

func TestLoadFrom_BadPort(t *testing.T) {
	v := baseViper()
	v.Set("DB_PORT", "fifty")

	_, err := LoadFrom(v)
	assert.EqualError(t, err, "DB_PORT must be a valid number")
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	v := baseViper()
	v.Set("JWT_SECRET", "")

	_, err := LoadFrom(v)
	assert.Error(t, err)
}

func TestParseServer(t *testing.T) {
	host, inst := ParseServer(`db01\ASSETS`, 0)
	assert.Equal(t, "db01", host)
	assert.Equal(t, "ASSETS", inst)

	host, inst = ParseServer(`db01\ASSETS`, 6432)
	assert.Equal(t, "db01", host)
	assert.Empty(t, inst)

	host, inst = ParseServer("db01", 0)
	assert.Equal(t, "db01", host)
	assert.Empty(t, inst)
}

func TestDSN_NamedInstanceAndPort(t *testing.T) {
	d := DBConfig{Host: "db01", Instance: "ASSETS", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, `host='db01' user='u' password='p' dbname='n'`, d.DSN())
	pc, err := pgxpool.ParseConfig(d.DSN())
	require.NoError(t, err)
	assert.Equal(t, "db01", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5432), pc.ConnConfig.Port)

	d.Port = 6432
	assert.Contains(t, d.DSN(), "port=6432")
	pc, err = pgxpool.ParseConfig(d.DSN())
	require.NoError(t, err)
	assert.Equal(t, uint16(6432), pc.ConnConfig.Port)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitList(" a, ,b c ,"))
	assert.Nil(t, splitList(""))
}
