// Package main library API.
//
// @title           Library API
// @version         1.0
// @description     School library administration (students, books, rentals, ranking).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Shermawns/Library-API/app/echoServer"
	authctrl "github.com/Shermawns/Library-API/app/echoServer/controller/auth"
	bookctrl "github.com/Shermawns/Library-API/app/echoServer/controller/book"
	rentalctrl "github.com/Shermawns/Library-API/app/echoServer/controller/rental"
	studentctrl "github.com/Shermawns/Library-API/app/echoServer/controller/student"
	"github.com/Shermawns/Library-API/app/echoServer/validation"
	"github.com/Shermawns/Library-API/config"
	bookrepo "github.com/Shermawns/Library-API/repository/book"
	rentalrepo "github.com/Shermawns/Library-API/repository/rental"
	studentrepo "github.com/Shermawns/Library-API/repository/student"
	userrepo "github.com/Shermawns/Library-API/repository/user"
	authsvc "github.com/Shermawns/Library-API/service/auth"
	booksvc "github.com/Shermawns/Library-API/service/book"
	rentalsvc "github.com/Shermawns/Library-API/service/rental"
	studentsvc "github.com/Shermawns/Library-API/service/student"
	"github.com/Shermawns/Library-API/util/database"
	"github.com/Shermawns/Library-API/util/mailer"
)

func main() {

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db)
	sr := studentrepo.New(db)
	rr := rentalrepo.New(db)
	ur := userrepo.New(db)

	// notifier
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, log)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.RegistrationCode)
	bs := booksvc.New(br)
	ss := studentsvc.New(sr)
	rs := rentalsvc.New(br, sr, rr, mail)

	// overdue sweep on a fixed interval
	sched := rentalsvc.NewScheduler(rs, cfg.SweepInterval, log)
	go sched.Run(ctx)

	// controllers share one validator instance with echo
	val := validation.New()
	v := val.Core()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	studentC := &studentctrl.Controller{Svc: ss, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Student: studentC,
		Rental:  rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "sweep_interval", cfg.SweepInterval.String())

	e.Logger.Fatal(e.Start(":" + port))
}
