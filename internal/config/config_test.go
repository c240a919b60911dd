package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	env := fromViper(v)

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "mysql", env.DBDriver)
	assert.Equal(t, 24*time.Hour, env.JWTExpiration)
	assert.Equal(t, 10*time.Minute, env.DBConnMaxLifetime)
	assert.Equal(t, []string{"*"}, env.CORSAllowedOrigins)
	assert.Equal(t, 10, env.LoginRatePerMinute)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", " SQLite ")
	v.Set("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("API_BASE_URL", "http://api.test/api/")
	env := fromViper(v)

	assert.Equal(t, "sqlite", env.DBDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, env.CORSAllowedOrigins)
	assert.Equal(t, "http://api.test/api", env.APIBaseURL)
}

func TestOpenDBSQLite(t *testing.T) {
	db, err := OpenDB(Env{DBDriver: "sqlite", DBDSN: "file::memory:?_foreign_keys=1"})
	require.NoError(t, err)
	defer CloseDB(db)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	_, err := OpenDB(Env{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestMySQLDSNForcesUTC(t *testing.T) {
	dsn, err := mysqlDSN("root:pw@tcp(127.0.0.1:3306)/bus_booking")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.NotContains(t, dsn, "loc=")

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}
