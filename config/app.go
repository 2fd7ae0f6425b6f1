package config

import "time"

type App struct {
	Port             string        `env:"APP_PORT" default:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL,required"`
	JWTSecret        string        `env:"JWT_SECRET,required"`
	RegistrationCode string        `env:"REGISTRATION_CODE,required"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" default:"24h"`
	SMTPHost         string        `env:"SMTP_HOST"`
	SMTPPort         string        `env:"SMTP_PORT" default:"587"`
	SMTPUser         string        `env:"SMTP_USER"`
	SMTPPassword     string        `env:"SMTP_PASSWORD"`
	MailFrom         string        `env:"MAIL_FROM"`
	Env              string        `env:"APP_ENV" default:"dev"`
}
