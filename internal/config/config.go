package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`

	Stripe     Stripe     `envPrefix:"STRIPE_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Auth       Auth       `envPrefix:"AUTH_"`
}

type Stripe struct {
	BaseApiURL     string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey      string `env:"SECRET_KEY"`
	WebhookSecret  string `env:"WEBHOOK_SECRET"`
	PublishableKey string `env:"PUBLISHABLE_KEY"`
}

type Cloudinary struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.cloudinary.com"`
	CloudName  string `env:"CLOUD_NAME"`
	APIKey     string `env:"API_KEY"`
	APISecret  string `env:"API_SECRET"`
	// Folder is the namespace every uploaded asset lands under.
	Folder string `env:"FOLDER" envDefault:"storefront/products"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"72"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
