// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/peerloop/peerloop/internal/app/resources"
	"github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{Assist: appCfg.AssistTimeout})

	// Outside production a blank session_key gets a generated key so
	// the app runs with zero config. Sessions won't survive a restart.
	sessionKey := appCfg.SessionKey
	if sessionKey == "" {
		sessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not set; generated a throwaway key for this run")
	}

	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(sessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		return err
	}

	if err := seedTeacher(ctx, appCfg, deps, logger); err != nil {
		return err
	}
	return nil
}

// seedTeacher creates the configured first teacher account so a fresh
// deployment has someone who can sign in and build the class. It does
// nothing when seed_teacher_email is blank or the account already exists.
func seedTeacher(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedTeacherEmail == "" {
		return nil
	}
	if appCfg.SeedTeacherPassword == "" {
		return fmt.Errorf("seed_teacher_password must be set when seed_teacher_email is set")
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	store := userstore.New(deps.MongoDatabase)
	_, err := store.GetByEmail(ctx, appCfg.SeedTeacherEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("seed teacher lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.SeedTeacherPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed teacher password hash: %w", err)
	}

	u, err := store.Create(ctx, models.User{
		FullName:     "Teacher",
		Email:        appCfg.SeedTeacherEmail,
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("seed teacher create: %w", err)
	}

	logger.Info("seeded teacher account",
		zap.String("email", u.Email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
