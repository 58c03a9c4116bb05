package types

// AppConfig holds all application settings
type AppConfig struct {
	LegendaryRoot   string `json:"legendary_root"`   // Config dir of the legendary CLI
	LegendaryBinary string `json:"legendary_binary"` // Path or name of the legendary binary
}
