package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/identity"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/observability"
	"github.com/Noaaaaa59/powerlifting-app-v2/pkg/utils"
)

type identityStore interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	GetByUID(ctx context.Context, uid string) (*models.Identity, error)
}

type profileReader interface {
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
}

type signInAnnouncer interface {
	SignedIn(id identity.Identity)
	SignedOut()
}

type AuthHandler struct {
	identityRepo identityStore
	profileRepo  profileReader
	gateway      signInAnnouncer
	jwtSecret    string
}

func NewAuthHandler(
	identityRepo identityStore,
	profileRepo profileReader,
	gateway signInAnnouncer,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		gateway:      gateway,
		jwtSecret:    jwtSecret,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = "Anonymous"
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}

	id := &models.Identity{
		UID:          uuid.NewString(),
		Email:        req.Email,
		DisplayName:  displayName,
		PasswordHash: hashed,
	}
	if err := h.identityRepo.Create(c.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create account"})
	}

	return h.issueSession(c, id)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)

	id, err := h.identityRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup account"})
	}

	if !utils.CheckPassword(req.Password, id.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid email or password"})
	}

	return h.issueSession(c, id)
}

// issueSession hands a token to the client and announces the sign-in to the
// gateway so the session controller picks it up.
func (h *AuthHandler) issueSession(c *fiber.Ctx, id *models.Identity) error {
	token, err := utils.GenerateToken(id.UID, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	h.gateway.SignedIn(identity.Identity{
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"uid":          id.UID,
			"email":        id.Email,
			"display_name": id.DisplayName,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.gateway.SignedOut()
	return c.JSON(fiber.Map{"status": "signed out"})
}

// Me returns the authenticated identity together with its profile. An absent
// profile is null with onboarding_complete=false, not an error: the record
// is created lazily by the session controller on first sign-in.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	id, err := h.identityRepo.GetByUID(c.Context(), uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch account"})
	}

	profile, err := h.profileRepo.GetByUID(c.Context(), uid)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			observability.RecordProfileFetch("error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
		}
		observability.RecordProfileFetch("miss")
		return c.JSON(fiber.Map{
			"user":                id,
			"profile":             nil,
			"onboarding_complete": false,
		})
	}
	observability.RecordProfileFetch("hit")

	return c.JSON(fiber.Map{
		"user":                id,
		"profile":             profile,
		"onboarding_complete": profile.OnboardingCompleted,
	})
}

func requireUserID(c *fiber.Ctx) (string, error) {
	uid, ok := c.Locals("user_id").(string)
	if !ok || uid == "" {
		return "", errors.New("missing user id")
	}
	return uid, nil
}
