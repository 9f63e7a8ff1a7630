package services

import (
	"context"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

const tokenTTL = 72 * time.Hour

// IDTokenVerifier is implemented by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthResult is returned by every login flow.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService issues local JWTs for password and Firebase logins.
type AuthService struct {
	users     repositories.UserRepository
	firebase  IDTokenVerifier
	jwtSecret []byte
	admins    map[string]bool
	now       func() time.Time
}

// NewAuthService creates an AuthService. Accounts registered with one of
// adminEmails get the admin role.
func NewAuthService(users repositories.UserRepository, verifier IDTokenVerifier, jwtSecret string, adminEmails []string) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &AuthService{users: users, firebase: verifier, jwtSecret: []byte(jwtSecret), admins: admins, now: time.Now}
}

func (s *AuthService) roleFor(email string) models.Role {
	if s.admins[strings.ToLower(email)] {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// FirebaseEnabled reports whether Firebase login can be served.
func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*AuthResult, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to hash password")
	}
	user := &models.User{Name: req.Name, Email: req.Email, Password: string(hashed), Role: s.roleFor(req.Email)}
	err = s.users.CreateUser(ctx, user)
	if apperrors.IsConflict(err) {
		return nil, apperrors.New(apperrors.KindConflict, "user with this email already registered")
	}
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Signin(ctx context.Context, req models.SigninRequest) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if apperrors.IsNotFound(err) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errBadCredentials
	}
	return s.issue(user)
}

// FirebaseLogin verifies a Firebase ID token and links it to a local account,
// creating one on first login.
func (s *AuthService) FirebaseLogin(ctx context.Context, req models.FirebaseLoginRequest) (*AuthResult, error) {
	if s.firebase == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "firebase login is not configured")
	}
	token, err := s.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, err, "invalid firebase id token")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if email == "" {
		return nil, apperrors.New(apperrors.KindValidation, "firebase account has no email")
	}
	if name == "" {
		name = email
	}
	uid := token.UID

	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return s.issue(user)
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.UpdateUser(ctx, user.ID, map[string]any{"firebase_uid": uid}); err != nil {
			return nil, err
		}
		user.FirebaseUID = &uid
	case apperrors.IsNotFound(err):
		user = &models.User{Name: name, Email: email, FirebaseUID: &uid, Role: s.roleFor(email)}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, actor models.Actor) (*models.User, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	return s.users.GetUserByID(ctx, actor.ID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateUserRequest) (*models.User, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	fields := map[string]any{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if len(fields) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "nothing to update")
	}
	err := s.users.UpdateUser(ctx, actor.ID, fields)
	if apperrors.IsConflict(err) {
		return nil, apperrors.New(apperrors.KindConflict, "email already in use")
	}
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, actor.ID)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to generate token")
	}
	return &AuthResult{Token: signed, User: user}, nil
}

var errBadCredentials = apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
