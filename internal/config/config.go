package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"required,gte=4,lte=31"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// SRSConfig contains the scheduling and daily-quota settings.
//
// DesiredRetention, LearningSteps and MaximumInterval are forwarded to the
// spaced-repetition scheduler unchanged. MaxNewCardsPerDay and
// MaxReviewsPerDay bound how much work a learner is given per UTC calendar
// day.
type SRSConfig struct {
	DesiredRetention  float64 `mapstructure:"desired_retention"     validate:"required,gt=0,lt=1"`
	LearningSteps     []int   `mapstructure:"learning_steps"        validate:"required,min=1,dive,gt=0"`
	MaximumInterval   int     `mapstructure:"maximum_interval"      validate:"required,gt=0"`
	MaxNewCardsPerDay int     `mapstructure:"max_new_cards_per_day" validate:"required,gt=0"`
	MaxReviewsPerDay  int     `mapstructure:"max_reviews_per_day"   validate:"required,gt=0"`
}
