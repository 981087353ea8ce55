package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type UsersStorage interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	codes        *CodeGenerator
	secret       []byte
	accessTTL    time.Duration
}

func New(
	log *slog.Logger,
	storage UsersStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	accessTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		codes:        NewCodeGenerator(secret),
		secret:       []byte(secret),
		accessTTL:    accessTTL,
	}
}

// Signup registers a pending account or re-requests a confirmation code for
// an existing one. An exact (username, email) match is idempotent; a partial
// match is an identity collision. A fresh code is always computed and
// dispatched out-of-band; dispatch failures never fail the request.
func (a *AuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "username", username)

	identityErrs := make(map[string]string)
	byUsername, err := a.storage.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	if byUsername != nil && byUsername.Email != email {
		identityErrs["username"] = "This name already used"
	}
	byEmail, err := a.storage.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	if byEmail != nil && byEmail.Username != username {
		identityErrs["email"] = "This email already used"
	}
	if len(identityErrs) > 0 {
		log.Info("signup identity collision")
		return nil, &IdentityError{Fields: identityErrs}
	}

	user := byUsername
	if user == nil {
		user, err = a.storage.Insert(ctx, &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		})
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				// lost a race with a concurrent signup
				return nil, &IdentityError{Fields: map[string]string{
					"username": "This name already used",
				}}
			}
			log.Error(err.Error())
			return nil, err
		}
		log.Info("created pending user", "user_id", user.ID)
	}

	code := a.codes.Make(user)
	recipient := user.Email
	tmplUsername := user.Username
	a.taskExecutor.Add(func() {
		a.sendConfirmationEmail(recipient, tmplUsername, code)
	})
	return user, nil
}

func (a *AuthService) sendConfirmationEmail(recipient, username, code string) {
	err := a.mailer.Send(recipient, "confirmation_code.html", map[string]any{
		"username":         username,
		"confirmationCode": code,
	})
	if err != nil {
		a.log.Error("Error sending confirmation email", "errMsg", err.Error())
	}
}

// IssueToken exchanges a confirmation code for a signed access token. The
// code is verified against the user's current state, so any profile save
// since issuance invalidates it.
func (a *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	const op = "auth.AuthService.IssueToken"
	log := a.log.With("op", op, "username", username)

	user, err := a.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrUserNotFound
		}
		log.Error(err.Error())
		return "", err
	}
	if !a.codes.Check(user, code) {
		log.Info("confirmation code mismatch")
		return "", ErrInvalidConfirmationCode
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(a.accessTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}
	return token, nil
}

// UserFromToken verifies a bearer token and loads the user it names.
func (a *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.AuthService.UserFromToken"
	log := a.log.With("op", op)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	user, err := a.storage.GetByID(ctx, int64(uid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("user from token not found", "user_id", int64(uid))
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}
