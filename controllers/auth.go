package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/model"
	"github.com/signalroom/signalroom-be/services"
	"github.com/signalroom/signalroom-be/util"
	"golang.org/x/crypto/bcrypt"
)

// invalidCredentialsMsg is shared by the no-such-user and wrong-password
// paths so responses never disclose whether an account exists.
const invalidCredentialsMsg = "invalid email or password"

type AuthController struct {
	db     db.UserDatabase
	tokens *services.TokenService
}

func NewAuthController(userDB db.UserDatabase, tokens *services.TokenService) *AuthController {
	return &AuthController{
		db:     userDB,
		tokens: tokens,
	}
}

type AuthResult struct {
	Token string
	User  *model.User
}

type Signup struct {
	Email     string
	Password  string
	IsPremium bool
	Role      model.Role
}

// Signup creates a credential record and issues a token. The duplicate check
// deliberately ignores role: an admin and a user cannot share an email even
// though login filters by role.
func (ac *AuthController) Signup(ctx context.Context, req *Signup) (*AuthResult, *util.HTTPError) {
	existing, err := ac.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if existing != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "email already in use",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("password hashing failed", err)
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "internal error",
		}
	}

	userId, err := ac.db.CreateUser(ctx, &db.CreateUser{
		Email:        req.Email,
		PasswordHash: string(hash),
		IsPremium:    req.IsPremium,
		Role:         req.Role,
	})
	if err != nil {
		// the pre-check races with concurrent signups; the unique index has
		// the final say
		if db.IsDupKeyErr(err) {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "email already in use",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}

	user, err := ac.db.GetUserById(ctx, userId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return ac.buildAuthResult(user)
}

func (ac *AuthController) Login(ctx context.Context, email, password string, role model.Role) (*AuthResult, *util.HTTPError) {
	user, err := ac.db.GetUserByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusUnauthorized,
			Message: invalidCredentialsMsg,
		}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusUnauthorized,
			Message: invalidCredentialsMsg,
		}
	}
	return ac.buildAuthResult(user)
}

func (ac *AuthController) buildAuthResult(user *model.User) (*AuthResult, *util.HTTPError) {
	token, err := ac.tokens.Issue(user.Id)
	if err != nil {
		log.Println("token signing failed", err)
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "internal error",
		}
	}
	return &AuthResult{
		Token: token,
		User:  user,
	}, nil
}
