package connection

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"

	"github.com/restodesk/restodesk/internal"
)

// FromEnv reads the store location from the environment. RESTODESK_DB_URL
// wins when set; otherwise the classic DB_NAME/DB_USER/DB_PASSWORD/DB_PORT
// variables are composed into a mysql URL (host is implicit, localhost).
func FromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{"RESTODESK_DB_URL", "DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PORT"} {
		v.MustBindEnv(key)
	}
	if dburl := v.GetString("RESTODESK_DB_URL"); dburl != "" {
		return Config{URL: dburl}, nil
	}
	name := v.GetString("DB_NAME")
	user := v.GetString("DB_USER")
	if name == "" || user == "" {
		return Config{}, internal.ConnectionError(nil, "database credentials not configured (set RESTODESK_DB_URL or DB_NAME/DB_USER/DB_PASSWORD/DB_PORT)")
	}
	host := v.GetString("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := v.GetInt("DB_PORT")
	if port == 0 {
		port = 3306
	}
	u := url.URL{
		Scheme: "mysql",
		User:   url.UserPassword(user, v.GetString("DB_PASSWORD")),
		Host:   fmt.Sprintf("%s:%d", host, port),
		Path:   "/" + name,
	}
	return Config{URL: u.String()}, nil
}
