package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Shermawns/Library-API/app/echoServer/controller/auth"
	"github.com/Shermawns/Library-API/app/echoServer/controller/book"
	"github.com/Shermawns/Library-API/app/echoServer/controller/rental"
	"github.com/Shermawns/Library-API/app/echoServer/controller/student"
	"github.com/Shermawns/Library-API/model"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Student   *student.Controller
	Rental    *rental.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	jwtMw := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	})

	// Any authenticated user
	me := e.Group("/api/v1", jwtMw)
	me.PUT("/auth/password", c.Auth.ChangePassword)

	// Library administration, ADMIN only (mirrors the role gate on the
	// whole catalog/rental surface).
	admin := e.Group("/api/v1", jwtMw, RequireRole(model.RoleAdmin))

	// Students
	admin.POST("/students", c.Student.Create)
	admin.GET("/students", c.Student.List)
	admin.GET("/students/:id", c.Student.Detail)
	admin.PUT("/students/:id", c.Student.Update)
	admin.DELETE("/students/:id", c.Student.Delete)

	// Books
	admin.POST("/books", c.Book.Create)
	admin.GET("/books", c.Book.List)
	admin.GET("/books/isbn/:isbn", c.Book.DetailByISBN)
	admin.GET("/books/:id", c.Book.Detail)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)

	// Rentals
	admin.POST("/rentals", c.Rental.Rent)
	admin.POST("/rentals/:id/return", c.Rental.Return)
	admin.POST("/rentals/:id/extend", c.Rental.Extend)
	admin.GET("/rentals/student/:studentId", c.Rental.ByStudent)
	admin.GET("/rentals/book/:bookId", c.Rental.ByBook)
	admin.GET("/rentals/active", c.Rental.Active)
	admin.GET("/rentals/overdue", c.Rental.Overdue)

	// Ranking
	admin.GET("/ranking/students", c.Rental.Ranking)
}
