package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config xplend config
type Config struct {
	App App       `json:"app"`
	DB  db.Config `json:"db"`
	API API       `json:"api"`
}

// App app config
type App struct {
	// Asset pool asset symbol, default XP
	Asset    string `json:"asset"`
	Location string `json:"location"`
}

// API api config
type API struct {
	JWTSecret string `json:"jwt_secret"`
}

// PoolAsset asset of the lending pool, XP if unset
func (c *Config) PoolAsset() string {
	if c.App.Asset == "" {
		return "XP"
	}

	return c.App.Asset
}
