package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shermawns/Library-API/model"
	userrepo "github.com/Shermawns/Library-API/repository/user"
	"github.com/Shermawns/Library-API/util/hash"
	jwtutil "github.com/Shermawns/Library-API/util/jwt"
)

var (
	ErrBadRegistrationCode = errors.New("invalid registration code")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCreds        = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password is wrong")
	ErrPasswordMismatch    = errors.New("new password and confirmation differ")
	ErrNotFound            = errors.New("user not found")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordReq) error
}

type service struct {
	ur      userrepo.Repo
	secret  string
	regCode string
}

func New(ur userrepo.Repo, secret, registrationCode string) Service {
	return &service{ur: ur, secret: secret, regCode: registrationCode}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	if req.RegistrationCode != s.regCode {
		return nil, "", ErrBadRegistrationCode
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hashed,
		Role:         req.Role,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordReq) error {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if !hash.Check(u.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hashed, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.ur.UpdatePassword(ctx, userID, hashed)
}
